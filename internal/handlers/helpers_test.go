package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/validator"
)

const (
	testUserID     = "6f1c2a4e-1b2c-4d3e-8f90-0a1b2c3d4e5f"
	testBudgetID   = "0191e0c4-7a1b-7c2d-8e3f-4a5b6c7d8e9f"
	testCategoryID = "0191e0c4-7a1b-7c2d-8e3f-4a5b6c7d8ea0"
	testExpenseID  = "0191e0c4-7a1b-7c2d-8e3f-4a5b6c7d8ea1"
	testPaymentID  = "0191e0c4-7a1b-7c2d-8e3f-4a5b6c7d8ea2"
)

// --- mock audit service ---

type auditEntry struct {
	userID, action, resourceType, resourceID string
	changes                                  map[string]interface{}
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID, changes})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertAudited(t *testing.T, audit *mockAuditService, action string) {
	t.Helper()
	for _, e := range audit.entries {
		if e.action == action {
			if e.userID != testUserID {
				t.Errorf("expected audit user %s, got %s", testUserID, e.userID)
			}
			return
		}
	}
	t.Errorf("expected audit action %s, got %+v", action, audit.entries)
}
