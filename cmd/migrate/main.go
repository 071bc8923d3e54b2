// migrate 套用或退回資料庫 schema。
//
//	DATABASE_URL=postgres://... migrate        # 套用全部 migration
//	DATABASE_URL=postgres://... migrate -down  # 退回到版本 0
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"sainik-college/internal/database"

	"github.com/joho/godotenv"
)

var (
	loadDotenv      = godotenv.Load
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	exitFunc        = os.Exit
)

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	down := fs.Bool("down", false, "退回所有 migration（會刪除全部資料）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = loadDotenv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	if *down {
		if err := rollbackAllFn(dbURL); err != nil {
			return fmt.Errorf("Rollback 執行失敗: %v", err)
		}
		fmt.Fprintln(out, "all migrations rolled back")
		return nil
	}
	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}
	fmt.Fprintln(out, "migrations applied")
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
