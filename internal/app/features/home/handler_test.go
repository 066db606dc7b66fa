package home_test

import (
	"net/http/httptest"
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/home"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot_Anonymous(t *testing.T) {
	h := home.NewHandler(zap.NewNop())
	rec := testutil.NewRecorder()
	h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))
	rec.AssertRedirect(t, "/login")
}

func TestServeRoot_SignedIn(t *testing.T) {
	h := home.NewHandler(zap.NewNop())
	rec := testutil.NewRecorder()
	h.ServeRoot(rec, testutil.NewAuthenticatedRequest("GET", "/", testutil.BlockOfficer(5, 12, 30)))
	rec.AssertRedirect(t, "/dashboard")
}
