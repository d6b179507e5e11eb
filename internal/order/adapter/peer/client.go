package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/tracing"
)

var errStatus = errors.New("unexpected status")

// Client talks to the user, restaurant and shipper services.
// Every call gets its own timeout and ignores cancellation of the caller's context.
type Client struct {
	http          *http.Client
	userURL       string
	restaurantURL string
	shipperURL    string
	timeout       time.Duration
	mylog         logger.Logger
}

func NewClient(cfg config.Peers, mylog logger.Logger) *Client {
	return &Client{
		http:          &http.Client{Transport: tracing.Transport(nil)},
		userURL:       strings.TrimRight(cfg.UserServiceURL, "/"),
		restaurantURL: strings.TrimRight(cfg.RestaurantServiceURL, "/"),
		shipperURL:    strings.TrimRight(cfg.ShipperServiceURL, "/"),
		timeout:       cfg.Timeout,
		mylog:         mylog,
	}
}

type userBody struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type namedBody struct {
	Name string `json:"name"`
}

type menuItemBody struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (c *Client) UserName(ctx context.Context, userID string) core.Lookup[string] {
	var body userBody
	if err := c.getJSON(ctx, c.userURL+"/users/"+url.PathEscape(userID), &body); err != nil {
		return c.unresolvedName("user", userID, err)
	}
	name := body.Username
	if name == "" {
		name = body.Name
	}
	if name == "" {
		return c.unresolvedName("user", userID, errors.New("no name field"))
	}
	return core.Lookup[string]{Value: name, Resolved: true}
}

func (c *Client) RestaurantName(ctx context.Context, restaurantID string) core.Lookup[string] {
	return c.name(ctx, "restaurant", c.restaurantURL+"/restaurants/"+url.PathEscape(restaurantID), restaurantID)
}

func (c *Client) ShipperName(ctx context.Context, shipperID string) core.Lookup[string] {
	return c.name(ctx, "shipper", c.shipperURL+"/shippers/"+url.PathEscape(shipperID), shipperID)
}

// MenuItem fetches the restaurant's whole menu and scans it for menuItemID.
func (c *Client) MenuItem(ctx context.Context, restaurantID, menuItemID string) core.Lookup[core.MenuItem] {
	unknown := core.Lookup[core.MenuItem]{Value: core.MenuItem{Name: core.Unknown, Price: 0}}

	var items []menuItemBody
	u := c.restaurantURL + "/restaurants/" + url.PathEscape(restaurantID) + "/menu-items"
	if err := c.getJSON(ctx, u, &items); err != nil {
		c.degraded("menu_item", menuItemID, err)
		return unknown
	}
	for _, item := range items {
		if item.ID == menuItemID {
			return core.Lookup[core.MenuItem]{
				Value:    core.MenuItem{Name: item.Name, Price: item.Price},
				Resolved: true,
			}
		}
	}
	c.degraded("menu_item", menuItemID, errors.New("not on menu"))
	return unknown
}

// SetShipperBusy marks the shipper busy. The caller decides what a failure means.
func (c *Client) SetShipperBusy(ctx context.Context, shipperID string) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	payload, _ := json.Marshal(map[string]string{"status": "busy"})
	u := c.shipperURL + "/shippers/" + url.PathEscape(shipperID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", u, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put %s: %w: %d", u, errStatus, resp.StatusCode)
	}
	return nil
}

// UserExists is false only on a 404. Transport failures are returned as errors.
func (c *Client) UserExists(ctx context.Context, userID string) (bool, error) {
	return c.exists(ctx, c.userURL+"/users/"+url.PathEscape(userID))
}

func (c *Client) RestaurantExists(ctx context.Context, restaurantID string) (bool, error) {
	return c.exists(ctx, c.restaurantURL+"/restaurants/"+url.PathEscape(restaurantID))
}

func (c *Client) exists(ctx context.Context, u string) (bool, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer drain(resp.Body)

	return resp.StatusCode != http.StatusNotFound, nil
}

func (c *Client) name(ctx context.Context, kind, u, id string) core.Lookup[string] {
	var body namedBody
	if err := c.getJSON(ctx, u, &body); err != nil {
		return c.unresolvedName(kind, id, err)
	}
	if body.Name == "" {
		return c.unresolvedName(kind, id, errors.New("no name field"))
	}
	return core.Lookup[string]{Value: body.Name, Resolved: true}
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
}

func (c *Client) unresolvedName(kind, id string, err error) core.Lookup[string] {
	c.degraded(kind, id, err)
	return core.Lookup[string]{Value: core.Unknown}
}

func (c *Client) degraded(kind, id string, err error) {
	c.mylog.Action("lookup_degraded").Warn("Peer lookup failed, using placeholder",
		"kind", kind, "id", id, "reason", err.Error())
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
