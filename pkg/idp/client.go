package idp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/phone_inventory/pkg/utils"
)

// ErrTokenRejected 表示身份提供方拒绝了该访问令牌
var ErrTokenRejected = errors.New("身份提供方拒绝了该访问令牌")

// Profile 是身份提供方返回的用户档案
type Profile struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Image *string `json:"picture"`
}

// Verifier 抽象身份提供方的令牌校验能力，便于在测试中替换
type Verifier interface {
	// Verify 用访问令牌换取用户档案。令牌无效返回 ErrTokenRejected。
	Verify(accessToken string) (*Profile, error)
}

// Client 通过 HTTP 调用身份提供方的 userinfo 端点。
// 前端完成 OAuth 授权后把访问令牌交给本服务，由这里回源校验。
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient 创建一个新的身份提供方客户端
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Verify 用访问令牌换取用户档案
func (c *Client) Verify(accessToken string) (*Profile, error) {
	httpReq, err := http.NewRequest(http.MethodGet, c.baseURL+"/oauth2/v3/userinfo", nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrTokenRejected
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("身份提供方返回异常状态: " + resp.Status)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	// userinfo 没带邮箱或邮箱格式异常，同样视为令牌不可用
	if profile.Email == "" || !utils.ValidateEmailFormat(profile.Email) {
		return nil, ErrTokenRejected
	}
	return &profile, nil
}
