package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthLoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
}

type ProductDTO struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int64           `json:"category_id"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ユーザーを新規登録してaccess_tokenを返す。emailはテストごとにユニーク。
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := "e2e-" + time.Now().Format("20060102-150405.000000000") + "@example.com"

	reg := RegisterRequest{Name: "E2E User", Email: email, Password: "password123"}
	regJSON, err := json.Marshal(reg)
	if err != nil {
		t.Fatalf("json.Marshal(RegisterRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", regJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	login := LoginRequest{Email: email, Password: "password123"}
	loginJSON, err := json.Marshal(login)
	if err != nil {
		t.Fatalf("json.Marshal(LoginRequest) failed: %v", err)
	}

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", loginJSON)
	requireStatus(t, resp, http.StatusOK, body)

	var out AuthLoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json.Unmarshal(AuthLoginResponse) failed: %v body=%s", err, string(body))
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}

	return out.AccessToken
}

// カテゴリを1つ作ってIDを返す
func createCategory(t *testing.T, c *TestClient, ctx context.Context, access string) int64 {
	t.Helper()

	req := CategoryRequest{Name: "E2E-Cat-" + time.Now().Format("150405.000000000")}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(CategoryRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/categories", access, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var cat CategoryDTO
	if err := json.Unmarshal(body, &cat); err != nil {
		t.Fatalf("json.Unmarshal(CategoryDTO) failed: %v body=%s", err, string(body))
	}
	if cat.ID <= 0 {
		t.Fatalf("category id should be > 0: body=%s", string(body))
	}
	return cat.ID
}

// 商品を1つ作ってDTOを返す
func createProduct(t *testing.T, c *TestClient, ctx context.Context, access string, categoryID int64, name string, price int64) ProductDTO {
	t.Helper()

	req := ProductCreateRequest{
		Name:        name,
		Description: "e2e",
		Price:       decimal.NewFromInt(price),
		CategoryID:  categoryID,
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(ProductCreateRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", access, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var p ProductDTO
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("json.Unmarshal(ProductDTO) failed: %v body=%s", err, string(body))
	}
	if p.ID <= 0 {
		t.Fatalf("product id should be > 0: body=%s", string(body))
	}
	return p
}
