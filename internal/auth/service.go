// Package auth は許可リストベースのアクセス認可を提供する。
//
// 認可はメールアドレスとテナントIDの純粋な判定であり、外部IdPへの
// 問い合わせやセッション発行は行わない。判定に使う許可リストは
// 起動時の設定から与えられる。
package auth

import (
	"log/slog"
	"strings"

	"github.com/hitoshi/taskboard/internal/model"
)

// Decision は認可判定の結果を表す。
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// 拒否理由のメッセージ。UIにそのまま表示される。
const (
	ReasonDifferentTenant = "このアカウントは別の組織に所属しています。"
	ReasonNotOnList       = "このアカウントは許可リストに登録されていません。"
)

// Service は許可リストによる認可判定を提供する。
type Service struct {
	allowedEmails    []string // 小文字正規化済み
	allowedDomains   []string // 小文字正規化済み
	requiredTenantID string
}

// NewService はServiceを生成する。
// emailsとdomainsは小文字正規化済みであること（config.Loadが保証する）。
func NewService(emails, domains []string, requiredTenantID string) *Service {
	return &Service{
		allowedEmails:    emails,
		allowedDomains:   domains,
		requiredTenantID: requiredTenantID,
	}
}

// Authorize はメールアドレスとテナントIDを許可リストと照合する。
//
// 判定順序:
//  1. メールアドレスが空の場合は検証エラーを返す
//  2. テナントIDが要求と一致しない場合は拒否
//  3. 許可リストが両方とも空の場合は許可（リスト未設定の環境向け）
//  4. メールアドレスが許可メール一覧に含まれれば許可
//  5. メールアドレスのドメインが許可ドメイン一覧に含まれれば許可
//  6. 上記いずれにも該当しない場合は拒否
//
// 判定に迷うケース（ドメインを持たない不正な形式など）はすべて拒否側に倒す。
func (s *Service) Authorize(email, tenantID string) (Decision, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Decision{}, model.NewValidationError("メールアドレスは必須です")
	}

	if s.requiredTenantID != "" && tenantID != s.requiredTenantID {
		slog.Info("認可を拒否しました",
			slog.String("email", email),
			slog.String("reason", "tenant_mismatch"),
		)
		return Decision{Allowed: false, Reason: ReasonDifferentTenant}, nil
	}

	if len(s.allowedEmails) == 0 && len(s.allowedDomains) == 0 {
		return Decision{Allowed: true}, nil
	}

	for _, allowed := range s.allowedEmails {
		if email == allowed {
			return Decision{Allowed: true}, nil
		}
	}

	if domain := emailDomain(email); domain != "" {
		for _, allowed := range s.allowedDomains {
			if domain == allowed {
				return Decision{Allowed: true}, nil
			}
		}
	}

	slog.Info("認可を拒否しました",
		slog.String("email", email),
		slog.String("reason", "not_on_list"),
	)
	return Decision{Allowed: false, Reason: ReasonNotOnList}, nil
}

// emailDomain はメールアドレスのドメイン部分を返す。
// @を含まない、またはドメイン部分が空の場合は空文字列を返す。
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}
