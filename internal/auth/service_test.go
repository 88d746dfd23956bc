package auth

import (
	"errors"
	"testing"

	"github.com/hitoshi/taskboard/internal/model"
)

// TestAuthorize_DecisionTable は認可判定の全分岐を検証する。
func TestAuthorize_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		emails     []string
		domains    []string
		tenant     string
		email      string
		reqTenant  string
		wantAllow  bool
		wantReason string
	}{
		{
			name:      "リスト未設定ならすべて許可",
			email:     "anyone@example.com",
			wantAllow: true,
		},
		{
			name:      "許可メール一覧に一致すれば許可",
			emails:    []string{"sarah.chen@example.com"},
			email:     "sarah.chen@example.com",
			wantAllow: true,
		},
		{
			name:      "メール照合は大文字小文字を区別しない",
			emails:    []string{"sarah.chen@example.com"},
			email:     "Sarah.Chen@Example.COM",
			wantAllow: true,
		},
		{
			name:      "許可ドメイン一覧に一致すれば許可",
			domains:   []string{"example.com"},
			email:     "newhire@example.com",
			wantAllow: true,
		},
		{
			name:       "どちらの一覧にも該当しなければ拒否",
			emails:     []string{"sarah.chen@example.com"},
			domains:    []string{"example.com"},
			email:      "outsider@other.org",
			wantAllow:  false,
			wantReason: ReasonNotOnList,
		},
		{
			name:       "サブドメインは別ドメインとして拒否",
			domains:    []string{"example.com"},
			email:      "user@mail.example.com",
			wantAllow:  false,
			wantReason: ReasonNotOnList,
		},
		{
			name:       "ドメインを持たない形式は拒否",
			domains:    []string{"example.com"},
			email:      "not-an-email",
			wantAllow:  false,
			wantReason: ReasonNotOnList,
		},
		{
			name:      "テナント一致かつドメイン一致で許可",
			domains:   []string{"example.com"},
			tenant:    "tenant-123",
			email:     "user@example.com",
			reqTenant: "tenant-123",
			wantAllow: true,
		},
		{
			name:       "テナント不一致は許可リストより先に拒否",
			emails:     []string{"user@example.com"},
			tenant:     "tenant-123",
			email:      "user@example.com",
			reqTenant:  "tenant-999",
			wantAllow:  false,
			wantReason: ReasonDifferentTenant,
		},
		{
			name:       "テナント要求ありでテナント未指定は拒否",
			tenant:     "tenant-123",
			email:      "user@example.com",
			wantAllow:  false,
			wantReason: ReasonDifferentTenant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.emails, tt.domains, tt.tenant)

			decision, err := svc.Authorize(tt.email, tt.reqTenant)
			if err != nil {
				t.Fatalf("Authorize returned error: %v", err)
			}
			if decision.Allowed != tt.wantAllow {
				t.Errorf("Allowed = %v, want %v", decision.Allowed, tt.wantAllow)
			}
			if decision.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", decision.Reason, tt.wantReason)
			}
		})
	}
}

// TestAuthorize_MissingEmail はメールアドレス未指定が検証エラーになることを検証する。
func TestAuthorize_MissingEmail(t *testing.T) {
	svc := NewService(nil, nil, "")

	tests := []string{"", "   "}
	for _, email := range tests {
		_, err := svc.Authorize(email, "")
		if err == nil {
			t.Fatalf("Authorize(%q) should return validation error", email)
		}

		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %T", err)
		}
		if apiErr.Code != model.ErrCodeValidation {
			t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
		}
	}
}
