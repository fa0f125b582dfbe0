//go:build ignore

// Локальный запуск: сервер в фоне и сборка CLI-клиента.
//
//	go run launcher.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

func main() {
	fmt.Println("Запуск accounts...")

	clientName := "accounts"
	if runtime.GOOS == "windows" {
		clientName = "accounts.exe"
	}
	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	// собираем клиента, пока сервер поднимается
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/accounts")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	time.Sleep(3 * time.Second)

	fmt.Println("Сервер запущен")
	fmt.Printf("Данный терминал не закрывай. Открой новый и запускай: ./%s create --username ana --email ana@example.com\n", clientName)

	server.Wait()
}
