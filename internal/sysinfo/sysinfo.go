// Package sysinfo reports facts about the host zpoolctl runs on.
package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	gohost "github.com/shirou/gopsutil/v4/host"
)

// Auto is the configured OS family value that asks for detection.
const Auto = "auto"

var hostInfoFn = gohost.InfoWithContext

// DetectOSFamily returns the host's OS family, lower-cased, e.g. "linux".
func DetectOSFamily(ctx context.Context) (string, error) {
	info, err := hostInfoFn(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read host info: %w", err)
	}

	family := strings.ToLower(strings.TrimSpace(info.OS))
	if family == "" {
		return "", fmt.Errorf("host info reported no OS family")
	}

	log.Debug().
		Str("component", "sysinfo").
		Str("os", family).
		Str("platform", info.Platform).
		Str("platformVersion", info.PlatformVersion).
		Str("kernel", info.KernelVersion).
		Msg("Detected host")

	return family, nil
}

// ResolveOSFamily returns configured unless it is empty or Auto, in which
// case the family is detected.
func ResolveOSFamily(ctx context.Context, configured string) (string, error) {
	configured = strings.ToLower(strings.TrimSpace(configured))
	if configured != "" && configured != Auto {
		return configured, nil
	}
	return DetectOSFamily(ctx)
}
