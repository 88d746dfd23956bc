package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/taskboard/internal/auth"
)

// AuthServiceInterface は認可ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Authorize(email, tenantID string) (auth.Decision, error)
}

// AuthHandler は許可リスト認可のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// authorizeRequest は認可判定リクエストのボディ。
type authorizeRequest struct {
	Email    string `json:"email"`
	TenantID string `json:"tenantId,omitempty"`
}

// Authorize はメールアドレスとテナントIDを許可リストと照合する。
// 拒否の場合も判定結果として200で返す（理由はレスポンスに含まれる）。
// POST /api/authorize
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	decision, err := h.service.Authorize(req.Email, req.TenantID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decision)
}
