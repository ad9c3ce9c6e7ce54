package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trsv-dev/users-service/internal/app"
	"github.com/trsv-dev/users-service/internal/auth"
	"github.com/trsv-dev/users-service/internal/config"
	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/internal/metrics"
	"github.com/trsv-dev/users-service/internal/storage"
	"github.com/trsv-dev/users-service/internal/storage/memory"
	"github.com/trsv-dev/users-service/internal/storage/postgres"
)

// таймаут на подключение к хранилищу и прочие хуки запуска
const startupTimeout = 30 * time.Second

// "Сборка" и запуск проекта.
func main() {
	os.Exit(run())
}

func run() (code int) {
	// recover для логирования паник в main
	defer func() {
		if r := recover(); r != nil {
			log.Println("Паника в main:", fmt.Sprintf("%v", r))
			code = 1
		}
	}()

	configPath := flag.String("c", config.DefaultPath, "путь к файлу конфигурации")
	envPath := flag.String("env", ".env", "путь к .env файлу")
	flag.Parse()

	// загружаем переменные окружения из .env для локальной разработки
	if errEnv := godotenv.Load(*envPath); errEnv != nil && !errors.Is(errEnv, fs.ErrNotExist) {
		log.Println("Не удалось загрузить .env:", errEnv)
	}

	// инициализация конфигурации сервера
	srvConfig, err := config.Load(*configPath)
	if err != nil {
		log.Println("Ошибка конфигурации:", err)
		return 1
	}

	// инициализация логгера с уровнем логирования из конфигурации
	appLogger, err := logger.New(srvConfig.EffectiveLogLevel(), srvConfig.LogDir)
	if err != nil {
		log.Println("Не удалось инициализировать логгер:", err)
		return 1
	}
	// отложенное закрытие файла лога
	defer appLogger.Close()

	application := app.New(srvConfig, appLogger, newStorage(srvConfig, appLogger), auth.NewJWTTokenBuilder(), metrics.New())

	startCtx, startCancel := context.WithTimeout(context.Background(), startupTimeout)
	err = application.Start(startCtx)
	startCancel()
	if err != nil {
		log.Println("Не удалось запустить приложение:", err)
		return 1
	}

	// канал системных сигналов
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	// блокируемся тут в ожидании одного из вариантов завершения работы сервера
	select {
	case err, ok := <-application.Errors():
		if ok {
			appLogger.Error("Ошибка сервера", logger.Err(err))
			code = 1
		} else {
			appLogger.Info("Канал ошибок сервера закрыт")
		}
	case sig := <-stop:
		appLogger.Info("Получен сигнал остановки приложения", logger.String("sig", sig.String()))
	}

	// контекст для завершения работы сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), srvConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err = application.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Ошибка остановки приложения", logger.Err(err))
		code = 1
	}

	return code
}

// newStorage Выбор бэкенда хранилища по конфигурации.
func newStorage(cfg *config.Config, log logger.Logger) storage.Storage {
	if cfg.Storage == config.StorageMemory {
		return memory.NewStorage(log)
	}

	return postgres.NewPgStorage(cfg.DatabaseURI(), log)
}
