package app

// Version information set at build time via ldflags:
//
//	go build -ldflags "-X github.com/Tkay6677/lunchpay/internal/app.Version=1.2.3"
var (
	Version   = "dev"
	BuildTime = "unknown"
)
