package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
)

// entityKind describes one backend entity collection for get-or-create.
type entityKind struct {
	name   string
	path   string
	iexact bool // collection supports ?name__iexact= filtering
	body   func(c *Client, name string) map[string]any
}

var (
	kindTag = entityKind{
		name:   "tag",
		path:   "/api/tags/",
		iexact: true,
		body: func(c *Client, name string) map[string]any {
			body := map[string]any{"name": name, "color": randomHexColor()}
			if c.cfg.OwnerID > 0 {
				body["owner"] = c.cfg.OwnerID
			}
			return body
		},
	}
	kindCorrespondent = entityKind{
		name:   "correspondent",
		path:   "/api/correspondents/",
		iexact: true,
		body: func(c *Client, name string) map[string]any {
			body := map[string]any{"name": name}
			if c.cfg.OwnerID > 0 {
				body["owner"] = c.cfg.OwnerID
			}
			return body
		},
	}
	kindDocumentType = entityKind{
		name:   "document_type",
		path:   "/api/document_types/",
		iexact: true,
		body: func(c *Client, name string) map[string]any {
			return map[string]any{"name": name}
		},
	}
	kindCustomField = entityKind{
		name: "custom_field",
		path: "/api/custom_fields/",
		body: func(c *Client, name string) map[string]any {
			return map[string]any{"name": name, "data_type": "string", "extra_data": nil}
		},
	}
)

type listResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

// find queries the backend for an entity of the given kind whose name matches
// case-insensitively. First match wins.
func (c *Client) find(ctx context.Context, kind entityKind, name string) (int, bool) {
	var query url.Values
	if kind.iexact {
		query = url.Values{"name__iexact": {name}}
	}
	raw, err := c.request(ctx, http.MethodGet, kind.path, query, nil)
	if err != nil {
		c.log.Error("paperless.resolve.list_error", "kind", kind.name, "name", name, "error", err)
		return 0, false
	}
	var list listResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Error("paperless.resolve.decode_error", "kind", kind.name, "name", name, "error", err)
		return 0, false
	}
	for _, res := range list.Results {
		if kind.iexact || strings.EqualFold(res.Name, name) {
			c.log.Info("paperless.resolve.hit", "kind", kind.name, "name", name, "id", res.ID)
			return res.ID, true
		}
	}
	return 0, false
}

// create adds a new entity of the given kind. In dry-run mode the intended
// create is logged and reported as resolved without an id.
func (c *Client) create(ctx context.Context, kind entityKind, name string) (int, bool) {
	if c.cfg.DryRun {
		c.log.Info("paperless.resolve.would_create", "kind", kind.name, "name", name)
		return 0, true
	}
	raw, err := c.request(ctx, http.MethodPost, kind.path, nil, kind.body(c, name))
	if err != nil {
		c.log.Error("paperless.resolve.create_error", "kind", kind.name, "name", name, "error", err)
		return 0, false
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		c.log.Error("paperless.resolve.decode_error", "kind", kind.name, "name", name, "error", err)
		return 0, false
	}
	c.log.Info("paperless.resolve.created", "kind", kind.name, "name", name, "id", created.ID)
	return created.ID, true
}

// resolve is find-then-create. Two sequential resolutions of the same name
// (modulo case) yield the same id; concurrent invocations are not guaranteed
// race-free and may create duplicates, which the backend must tolerate.
func (c *Client) resolve(ctx context.Context, kind entityKind, name string) (int, bool) {
	if id, ok := c.find(ctx, kind, name); ok {
		return id, true
	}
	return c.create(ctx, kind, name)
}

// ResolveTag returns the id for a tag name, creating the tag with a random
// display color if it does not exist yet.
func (c *Client) ResolveTag(ctx context.Context, name string) (int, bool) {
	return c.resolve(ctx, kindTag, name)
}

// ResolveTags resolves each tag name in input order. A name that fails to
// resolve is skipped, so the result may be shorter than the input.
func (c *Client) ResolveTags(ctx context.Context, names []string) []int {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := c.resolve(ctx, kindTag, name); ok {
			ids = append(ids, id)
		} else {
			c.log.Warn("paperless.resolve.tag_skipped", "name", name)
		}
	}
	return ids
}

func (c *Client) ResolveCorrespondent(ctx context.Context, name string) (int, bool) {
	return c.resolve(ctx, kindCorrespondent, name)
}

func (c *Client) ResolveDocumentType(ctx context.Context, name string) (int, bool) {
	return c.resolve(ctx, kindDocumentType, name)
}

// ResolveCustomField resolves a custom-field definition by name. The list
// endpoint has no name filter, so the full collection is scanned.
func (c *Client) ResolveCustomField(ctx context.Context, name string) (int, bool) {
	return c.resolve(ctx, kindCustomField, name)
}

// randomHexColor samples a uniform 24-bit RGB display color.
func randomHexColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
