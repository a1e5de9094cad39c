// Package pssapi implements the HTTP client for the Pixel Starships game
// server. Endpoints return XML documents whose entity elements carry their
// fields as attributes; the client flattens each entity element into an
// [entity.Record], with nested child elements (such as a weapon room's
// MissileDesign) becoming nested records.
//
// Outbound calls are rate limited and guarded by a circuit breaker so a
// misbehaving game server degrades into stale-cache serving instead of
// piling up timeouts.
package pssapi

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/resilience"
)

// DefaultBaseURL is the production game server used when the configuration
// does not name one.
const DefaultBaseURL = "https://api.pixelstarships.com"

const defaultTimeout = 15 * time.Second

// ErrNoRows is returned when a requested row container is missing from the
// response document. An empty container is not an error — some row sets
// (prestige paths for Special crew, say) are legitimately empty.
var ErrNoRows = errors.New("response contains no entity rows")

// StatusError reports a non-2xx HTTP response from the game server.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("game server returned HTTP %d for %s", e.Status, e.Path)
}

// Config holds the client tuning knobs.
type Config struct {
	// BaseURL is the game server root, without a trailing slash.
	// Default: [DefaultBaseURL].
	BaseURL string

	// Timeout bounds each HTTP request. Default: 15s.
	Timeout time.Duration

	// RequestsPerSecond limits the outbound request rate. Zero disables
	// limiting.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size. Default: 1 when limiting is
	// enabled.
	Burst int

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client fetches entity rows from the game server.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

// NewClient creates a [Client] from cfg, applying defaults for zero fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		limiter: limiter,
		breaker: resilience.New(resilience.Config{Name: "pssapi"}),
	}
}

// Entities fetches the endpoint at path (for example
// "RoomService/ListRoomDesigns2?languageKey=en") and returns the entity rows
// contained in the response document. container selects the row container
// element by tag name (some endpoints carry several row sets in one
// document); empty container picks the first attribute-bearing row set.
func (c *Client) Entities(ctx context.Context, path, container string, params url.Values) ([]entity.Record, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + params.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var rows []entity.Record
	err := c.breaker.Execute(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return &StatusError{Path: path, Status: resp.StatusCode}
		}

		rows, err = ParseEntities(resp.Body, container)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchFunc adapts an endpoint to the cache layer's fetch signature.
func (c *Client) FetchFunc(path, container string, params url.Values) entity.FetchFunc {
	return func(ctx context.Context) ([]entity.Record, error) {
		return c.Entities(ctx, path, container, params)
	}
}

// xmlNode is the intermediate tree built while walking the token stream.
type xmlNode struct {
	name     string
	attrs    map[string]string
	children []*xmlNode
}

// ParseEntities reads an XML response document and returns its entity rows.
//
// Game server documents wrap the payload in attribute-less service and
// container elements (RoomService → ListRoomDesigns → RoomDesigns). With a
// container name the rows are that element's children; without one, the
// entity elements are the first attribute-bearing elements found while
// descending. An error attribute on the root aborts with its message.
func ParseEntities(r io.Reader, container string) ([]entity.Record, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNoRows
	}
	if msg, ok := root.attrs["errorMessage"]; ok && msg != "" {
		return nil, fmt.Errorf("game server error: %s", msg)
	}

	if container != "" {
		c := findNode(root, container)
		if c == nil {
			return nil, fmt.Errorf("%w: no %s element", ErrNoRows, container)
		}
		return rowRecords(c.children), nil
	}

	cur := root
	for {
		var rows []*xmlNode
		for _, child := range cur.children {
			if len(child.attrs) > 0 {
				rows = append(rows, child)
			}
		}
		if len(rows) > 0 {
			return rowRecords(rows), nil
		}
		if len(cur.children) == 0 {
			// Empty row set.
			return nil, nil
		}
		// Attribute-less wrapper: descend into the first child.
		cur = cur.children[0]
	}
}

func rowRecords(rows []*xmlNode) []entity.Record {
	recs := make([]entity.Record, 0, len(rows))
	for _, n := range rows {
		recs = append(recs, n.record())
	}
	return recs
}

// findNode returns the first element named name, depth first.
func findNode(n *xmlNode, name string) *xmlNode {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := findNode(child, name); found != nil {
			return found
		}
	}
	return nil
}

func parseTree(r io.Reader) (*xmlNode, error) {
	dec := xml.NewDecoder(r)
	var stack []*xmlNode
	var root *xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return root, nil
}

// record flattens a node into an [entity.Record]: attributes become string
// fields, attribute-bearing child elements become nested records keyed by
// their tag name.
func (n *xmlNode) record() entity.Record {
	rec := make(entity.Record, len(n.attrs)+len(n.children))
	for k, v := range n.attrs {
		rec[k] = v
	}
	for _, child := range n.children {
		if len(child.attrs) > 0 || len(child.children) > 0 {
			rec[child.name] = child.record()
		}
	}
	return rec
}
