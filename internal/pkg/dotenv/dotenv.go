package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env (если файл есть) и применяет флаги командной строки.
// Переменные, уже заданные в окружении, не перезаписываются.
func Load() error {
	var (
		portFlag    string
		envFileFlag string
	)
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.StringVar(&envFileFlag, "env-file", ".env", "Path to the .env file")
	flag.Parse()

	err := godotenv.Load(envFileFlag)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFileFlag, err)
	}

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
