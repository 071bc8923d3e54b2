// createadmin 建立（或確認已存在）管理員帳號。
//
//	DATABASE_URL=postgres://... createadmin -username admin -email admin@example.com
//
// 密碼從終端機讀取，不會回顯；非終端輸入時讀取第一行。
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"sainik-college/internal/database"
	"sainik-college/internal/service"
	"sainik-college/internal/store"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

var (
	loadDotenv      = godotenv.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	isTerminal      = term.IsTerminal
	readPassword    = term.ReadPassword
	exitFunc        = os.Exit
)

// promptPassword 讀取密碼；stdin 為終端機時關閉回顯
func promptPassword(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	if isTerminal(int(in.Fd())) {
		b, err := readPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func run(args []string, in *os.File, out io.Writer) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "admin", "管理員帳號")
	email := fs.String("email", "", "管理員 Email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("-email 為必填")
	}

	_ = loadDotenv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	password, err := promptPassword(in, out)
	if err != nil {
		return fmt.Errorf("讀取密碼失敗: %v", err)
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	authn := service.NewAuthenticator(store.NewUsers(db), nil)
	created, err := authn.EnsureAdmin(ctx, *username, *email, password)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "admin %q created\n", *username)
	} else {
		fmt.Fprintf(out, "user %q already exists, nothing to do\n", *username)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
