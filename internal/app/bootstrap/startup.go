// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/resources"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Lookup: appCfg.BackendTimeout})
	viewdata.SetSiteName(appCfg.SiteName)
	resources.LoadSharedTemplates()
	return nil
}
