package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Repo       RepoConfig        `yaml:"repo"`
	Generator  GeneratorConfig   `yaml:"generator"`
	Categories []CategoryConfig  `yaml:"categories"`
	Fallback   CategoryConfig    `yaml:"fallback"`
	Sentinel   string            `yaml:"sentinel"`
	Runlog     RunlogConfig      `yaml:"runlog"`
	Git        GitConfig         `yaml:"git"`
	Notify     NotifyConfig      `yaml:"notify"`
	Schedule   ScheduleConfig    `yaml:"schedule"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Repo.Validate(); err != nil {
		return err
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories: at least one category is required")
	}
	for i := range c.Categories {
		if err := c.Categories[i].Validate(); err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
	}
	if err := c.Fallback.validateAsFallback(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	if c.Sentinel == "" {
		return fmt.Errorf("sentinel: cannot be blank")
	}
	if err := c.Runlog.Validate(); err != nil {
		return err
	}
	if err := c.Notify.Validate(); err != nil {
		return err
	}
	return c.Schedule.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// RepoConfig holds the notes repository layout.
type RepoConfig struct {
	Path      string `yaml:"path"`
	IndexFile string `yaml:"index_file"`
}

// Validate validates the repository configuration.
func (c *RepoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.IndexFile, validation.Required),
	)
}

// GeneratorConfig holds the AI CLI invocation settings.
type GeneratorConfig struct {
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	Prompt         string   `yaml:"prompt"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// Timeout returns the generation timeout as a duration.
func (c *GeneratorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the generator configuration.
func (c *GeneratorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// CategoryConfig declares one category: its display name, its exact heading
// line in the index document, and the keywords that classify titles into
// it. Declaration order is classification priority order.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Heading  string   `yaml:"heading"`
	Keywords []string `yaml:"keywords"`
}

// Validate validates a keyword-matched category.
func (c *CategoryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Heading, validation.Required),
		validation.Field(&c.Keywords, validation.Required, validation.Length(1, 0)),
	)
}

// validateAsFallback validates the catch-all category, which carries no
// keywords by definition.
func (c *CategoryConfig) validateAsFallback() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Heading, validation.Required),
	)
}

// RunlogConfig holds the SQLite run-ledger location.
type RunlogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the run-ledger configuration.
func (c *RunlogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// GitConfig controls the commit/push step.
type GitConfig struct {
	Enabled bool   `yaml:"enabled"`
	Remote  string `yaml:"remote"`
	Branch  string `yaml:"branch"`
}

// NotifyConfig groups the outbound channels. A channel with an empty
// endpoint is disabled.
type NotifyConfig struct {
	Webhook WebhookConfig `yaml:"webhook"`
	Email   EmailConfig   `yaml:"email"`
}

// Validate validates the notification configuration.
func (c *NotifyConfig) Validate() error {
	if err := c.Webhook.Validate(); err != nil {
		return err
	}
	return c.Email.Validate()
}

// WebhookConfig holds the webhook channel settings.
type WebhookConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Enabled reports whether the webhook channel is active.
func (c *WebhookConfig) Enabled() bool {
	return c.URL != ""
}

// Timeout returns the webhook timeout as a duration.
func (c *WebhookConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the webhook configuration.
func (c *WebhookConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, is.URL),
	)
}

// EmailConfig holds the SMTP channel settings.
type EmailConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Enabled reports whether the email channel is active.
func (c *EmailConfig) Enabled() bool {
	return c.Host != ""
}

// Validate validates the email configuration when the channel is enabled.
func (c *EmailConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.From, validation.Required, is.EmailFormat),
		validation.Field(&c.To, validation.Required, validation.Length(1, 0)),
	)
}

// ScheduleConfig holds the daemon-mode cron expression.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// Validate validates the schedule configuration.
func (c *ScheduleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Cron, validation.Required),
	)
}

// defaultPrompt is the generation prompt of the source deployment: one
// frontend learning note per day, first line an H1 title, followed by a
// one-line blockquote summary.
const defaultPrompt = `請產生一篇今日的前端學習筆記（繁體中文），主題從 React、TypeScript、前端架構中任選其一。
格式要求：
- 第一行是「# 標題」
- 第二段是一行以「> 」開頭的重點摘要
- 之後是詳細內容（## 小節）`

// NewDefaultConfig returns a new Config carrying the source deployment's
// defaults, including its zh-TW category headings and sentinel.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Repo: RepoConfig{
			Path:      "./notes",
			IndexFile: "README.md",
		},
		Generator: GeneratorConfig{
			Command:        "claude",
			Args:           []string{"-p"},
			Prompt:         defaultPrompt,
			TimeoutSeconds: 300,
		},
		Categories: []CategoryConfig{
			{
				Name:     "React",
				Heading:  "## React",
				Keywords: []string{"react", "hook", "component", "jsx", "redux", "useeffect", "usestate", "元件", "狀態管理"},
			},
			{
				Name:     "TypeScript",
				Heading:  "## TypeScript",
				Keywords: []string{"typescript", "泛型", "型別", "generic", "interface", "enum", "type"},
			},
			{
				Name:     "前端架構",
				Heading:  "## 前端架構",
				Keywords: []string{"架構", "效能", "測試", "優化", "architecture", "performance", "testing", "bundler", "webpack", "vite"},
			},
		},
		Fallback: CategoryConfig{
			Name:    "跨領域綜合",
			Heading: "## 跨領域綜合",
		},
		Sentinel: "*尚無筆記*",
		Runlog: RunlogConfig{
			Path: "./dagaz.db",
		},
		Git: GitConfig{
			Enabled: true,
			Remote:  "origin",
			Branch:  "main",
		},
		Schedule: ScheduleConfig{
			Cron: "0 8 * * *",
		},
	}
}
