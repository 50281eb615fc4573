package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Streak Picker Configuration

# Portfolio capital used for position sizing
capital = 100000.0

# Scoring strategy: "default" (policy-driven stop-loss) or "classic"
# (legacy weight table with a fixed 2% stop-loss)
strategy = "default"

[risk]
# Maximum tolerated portfolio drawdown
max_drawdown_percent = 5.0
# Risk budget for a single trade, as percent of capital
per_trade_loss_percent = 1.0
# Stop-loss distance below the buy price
daily_stop_loss_percent = 2.0
# Monthly loss budget
monthly_loss_percent = 4.0
# Expected holding horizon
trading_horizon_days = 14

[streak]
# Technical analysis endpoint
analysis_url = "https://technicalwidget.streak.tech/api/streak_tech_analysis/"
# Paginated screener listing used when no symbols are given
screener_url = "https://s-op.streak.tech/screeners/discover"
# Analysis time frame
time_frame = "hour"
# Per-request timeout
timeout_seconds = 30
# Cap on concurrent fetches, 0 for unbounded
max_concurrent = 0

[sink]
# Directory holding the picks worksheets
dir = ""
# Worksheet name
worksheet = "Picks"
# Default persistence mode: "append" or "overwrite"
mode = "append"

[history]
# Record run summaries and picks in a local SQLite database
enabled = true
path = ""

[notifications]
enabled = false

[notifications.email]
enabled = false
smtp_host = "smtp.gmail.com"
smtp_port = 587
username = ""
# Set via PICKER_SMTP_PASSWORD instead of storing here
password = ""
from = ""
to = ""
`

// createTemplateConfig writes a commented template config file.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0600)
}
