package preflight

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"framediff/internal/config"
)

// CheckServer probes the /healthz endpoint of a running framediffd.
func CheckServer(ctx context.Context, bind string) Result {
	const name = "Server"

	bind = strings.TrimSpace(bind)
	if bind == "" {
		return Result{Name: name, Detail: "missing bind address"}
	}
	base := bind
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, strings.TrimRight(base, "/")+"/healthz", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Result{Name: name, Detail: "not running"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("unhealthy (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("listening on %s", bind)}
}

// CheckServerFromConfig probes the server at the configured bind address.
func CheckServerFromConfig(cfg *config.Config) Result {
	if cfg == nil {
		return Result{Name: "Server", Detail: "Unknown"}
	}
	return CheckServer(context.Background(), cfg.Paths.APIBind)
}
