package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Zacy-Sokach/DocuChat/internal/utils"
	"github.com/google/uuid"
)

const (
	// BaseURL 后端地址，运行时不可配置
	BaseURL = "https://docuchatbackend-production.up.railway.app"

	documentCountPath = "/api/documents/count"
	uploadPath        = "/api/upload"
	chatPath          = "/api/chat"

	// UploadField 上传表单中文件字段的名称
	UploadField = "pdf"

	requestIDHeader = "X-Request-ID"
)

// APIError 表示 API 请求错误，包含状态码和错误信息
type APIError struct {
	StatusCode int
	// Message 来自响应体中的 error 字段，可能为空
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API请求失败 (状态码: %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API请求失败 (状态码: %d): %s", e.StatusCode, e.Body)
}

// 全局共享的HTTP客户端
// 不设置超时也不重试，每次调用都只尝试一次
var (
	sharedHTTPClient *http.Client
	httpClientOnce   sync.Once
)

func getSharedHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{}
	})
	return sharedHTTPClient
}

type Client struct {
	baseURL string
	headers http.Header
	doer    utils.Doer
}

// Option 配置 Client
type Option func(*Client)

// WithBaseURL 替换后端地址，仅用于测试
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDoer 替换底层的 HTTP 执行器
func WithDoer(doer utils.Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// NewClient 创建绑定到固定后端地址的客户端
// 默认带 Content-Type: application/json 头
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: BaseURL,
		headers: http.Header{},
		doer:    getSharedHTTPClient(),
	}
	c.headers.Set("Content-Type", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回客户端绑定的后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DocumentCount 查询后端已有的文档数量
func (c *Client) DocumentCount(ctx context.Context) (int, error) {
	var resp CountResponse
	if err := c.doJSON(ctx, http.MethodGet, documentCountPath, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// UploadPDF 以 multipart 形式上传文件，字段名为 pdf
// 成功时响应体被忽略
func (c *Client) UploadPDF(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	return c.Upload(ctx, filepath.Base(path), f)
}

// Upload 上传任意 reader 的内容，filename 作为表单中的文件名
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		return fmt.Errorf("创建表单失败: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("创建表单失败: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, uploadPath, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Chat 发送问题并返回后端生成的回答
func (c *Client) Chat(ctx context.Context, question string) (string, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, chatPath, ChatRequest{Question: question}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("序列化请求失败: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// checkResponse 把非 2xx 响应转换为 *APIError
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(bodyBytes)),
	}

	var errResp ErrorResponse
	if json.Unmarshal(bodyBytes, &errResp) == nil {
		apiErr.Message = errResp.Error
	}
	return apiErr
}
