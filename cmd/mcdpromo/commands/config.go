package commands

import (
	"context"
	"errors"
	"os"

	"mcdpromo-backend/lib/configutil"
	"mcdpromo-backend/lib/notify/telegram"
	"mcdpromo-backend/lib/restyutil"
	"mcdpromo-backend/lib/scrapers/mcdmcp"
	"mcdpromo-backend/lib/serviceutil"
)

type Config struct {
	McpBaseUrl       string `json:"mcp_base_url"`
	McpToken         string `json:"mcp_token"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatId   string `json:"telegram_chat_id"`
	PagesUrl         string `json:"pages_url"`
	SnapshotPath     string `json:"snapshot_path"`
	PagePath         string `json:"page_path"`
	RunlogDb         string `json:"runlog_db"`
}

const defaultMcpBaseUrl = "https://mcp.mcd.cn/mcp-servers/mcd-mcp"

// readConfig loads config.json5 and fills gaps from the environment,
// so the same binary works from a checkout (config file) and from a
// scheduled runner (env only, no file).
func readConfig() Config {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	if config.McpBaseUrl == "" {
		config.McpBaseUrl = defaultMcpBaseUrl
	}
	if config.McpToken == "" {
		config.McpToken = os.Getenv("MCD_TOKEN")
	}
	if config.TelegramBotToken == "" {
		config.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if config.TelegramChatId == "" {
		config.TelegramChatId = os.Getenv("TELEGRAM_CHAT_ID")
	}
	if config.PagesUrl == "" {
		config.PagesUrl = os.Getenv("GITHUB_PAGES_URL")
	}
	if config.SnapshotPath == "" {
		config.SnapshotPath = "calendar_data.json"
	}
	if config.PagePath == "" {
		config.PagePath = "index.html"
	}
	if config.RunlogDb == "" {
		config.RunlogDb = "runs.db"
	}
	return config
}

func createMcpClient(ctx context.Context, config Config) *mcdmcp.Client {
	client := mcdmcp.NewClient(mcdmcp.ClientOptions{
		BaseUrl: config.McpBaseUrl,
		Token:   config.McpToken,
	})
	client.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/mcdmcp"))

	if err := client.Initialize(ctx); err != nil {
		serviceutil.Fatal("failed to initialize mcp session", err)
	}
	return client
}

func createTelegramClient(config Config) *telegram.Client {
	return telegram.NewClient(config.TelegramBotToken, config.TelegramChatId)
}
