package cartstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ServerItem mirrors the cart item rows the API returns.
type ServerItem struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	LVName    string  `json:"lv_name"`
	RUName    string  `json:"ru_name"`
	ENName    string  `json:"en_name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ServerCart mirrors the cart envelope the API returns.
type ServerCart struct {
	CartID     uint         `json:"cart_id"`
	GuestID    *string      `json:"guest_id,omitempty"`
	CustomerID *string      `json:"customer_id,omitempty"`
	Items      []ServerItem `json:"items"`
}

type syncItemPayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// APIClient talks to the cart endpoints of the storefront API.
type APIClient struct {
	BaseURL    string
	Token      string // session JWT, empty for guests
	HTTPClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *APIClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, a.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", a.Token)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cart api: %s %s returned %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// SyncCart replaces the server-side item list with the given snapshot.
func (a *APIClient) SyncCart(guestID string, items []Item) error {
	payload := struct {
		GuestID string            `json:"guest_id"`
		Items   []syncItemPayload `json:"items"`
	}{GuestID: guestID, Items: make([]syncItemPayload, 0, len(items))}

	for _, item := range items {
		payload.Items = append(payload.Items, syncItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return a.do(http.MethodPost, "/cart/sync", payload, nil)
}

// MergeCart folds the guest cart into the logged-in customer's cart and
// returns the resulting cart. Requires Token to be set.
func (a *APIClient) MergeCart(guestID string) (*ServerCart, error) {
	payload := struct {
		GuestID string `json:"guest_id"`
	}{GuestID: guestID}

	var resp struct {
		Success bool        `json:"success"`
		Cart    *ServerCart `json:"cart"`
	}
	if err := a.do(http.MethodPost, "/cart/merge", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// FetchCart loads the current server-side cart, nil when none exists.
func (a *APIClient) FetchCart(guestID string) (*ServerCart, error) {
	path := "/cart"
	if guestID != "" {
		path += "?guest_id=" + guestID
	}

	var resp struct {
		Cart *ServerCart `json:"cart"`
	}
	if err := a.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}
