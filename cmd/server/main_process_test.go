package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// runHelper re-executes the test binary so main() can call log.Fatal.
func runHelper(t *testing.T, name string, env ...string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$")
	cmd.Env = append(os.Environ(), env...)
	return cmd.Run()
}

func TestMainProcess_ExitsWhenRedisUnreachable(t *testing.T) {
	if os.Getenv("LOYALTYJO_HELPER") == "redis" {
		main()
		return
	}

	err := runHelper(t, "TestMainProcess_ExitsWhenRedisUnreachable",
		"LOYALTYJO_HELPER=redis",
		"SERVER_ENV=development",
		"REDIS_URL=redis://127.0.0.1:0",
	)
	if err == nil {
		t.Fatal("expected helper process to exit with error")
	}
}

func TestMainProcess_ExitsOnUnreachableDatabase(t *testing.T) {
	if os.Getenv("LOYALTYJO_HELPER") == "db" {
		main()
		return
	}

	redisSrv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available in this environment: %v", err)
	}
	defer redisSrv.Close()

	err = runHelper(t, "TestMainProcess_ExitsOnUnreachableDatabase",
		"LOYALTYJO_HELPER=db",
		"SERVER_ENV=development",
		"SERVER_PORT=invalid-port",
		"REDIS_URL=redis://"+redisSrv.Addr(),
		"DB_HOST=127.0.0.1",
		"DB_PORT=1",
		"DB_NAME=loyaltyjo",
		"DB_SSLMODE=disable",
	)
	if err == nil {
		t.Fatal("expected helper process to exit with error")
	}
}
