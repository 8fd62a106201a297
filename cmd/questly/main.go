// @title           Questly Career Guidance API
// @version         1.0
// @description     Подбор карьерных траекторий по интересам пользователя, сессии и история анализов.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. The session_token cookie takes precedence.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const envLocal = "local"

var rootCmd = &cobra.Command{
	Use:   "questly",
	Short: "Questly career guidance backend",
	Long: `Questly career guidance backend. Usage:

	questly serve
	questly migrate up
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger возвращает текстовый логгер для локального окружения и JSON для остальных.
func setupLogger(env string) *slog.Logger {
	if env == envLocal {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
