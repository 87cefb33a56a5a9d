package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"honeypot-llm/internal/config"
	"honeypot-llm/internal/domain"
	"honeypot-llm/internal/llm"
	"honeypot-llm/internal/service"
)

// REPL local contra el motor: permite sondear la tabla de decision sin HTTP ni
// base de datos. Escribe como el estafador y observa veredicto, banderas y
// respuesta.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	var delegate *service.GenerationDelegate
	if cfg.LLMAPIKey != "" {
		llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
		delegate = service.NewGenerationDelegate(
			llmClient,
			cfg.PersonaDirective,
			time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
			nil,
			logger,
		)
		fmt.Println("Delegado de generacion: configurado")
	} else {
		fmt.Println("Delegado de generacion: deshabilitado (sin LLM_API_KEY)")
	}

	engine := service.NewEngine(service.NewSignalClassifier(service.DefaultVocabulary()), delegate, logger)
	sessionID := uuid.NewString()
	var history []domain.Message

	fmt.Printf("Sesion %s — escribe 'salir' para terminar.\n", sessionID)
	for {
		fmt.Print("Estafador > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			return
		}

		history = append(history, domain.Message{
			Role:      domain.RoleScammer,
			Content:   text,
			Timestamp: time.Now().Unix(),
		})

		result, err := engine.Evaluate(ctx, sessionID, text, history)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("[veredicto=%s turnos=%d]\n", result.Verdict, result.Metrics.TurnCount)
		printFlags(result.Flags)
		printIntelligence(result.Intelligence)
		fmt.Printf("Honeypot > %s\n\n", result.Reply)

		history = append(history, domain.Message{
			Role:      domain.RoleAgent,
			Content:   result.Reply,
			Timestamp: time.Now().Unix(),
		})
	}
}

func printFlags(f domain.ClassificationFlags) {
	if !f.Any() {
		return
	}
	var active []string
	if f.PaymentRequested {
		active = append(active, "pago")
	}
	if f.BankOrAccountReferenced {
		active = append(active, "banco/cuenta")
	}
	if f.OTPOrVerificationReferenced {
		active = append(active, "otp/verificacion")
	}
	if f.UrgencyAsserted {
		active = append(active, "urgencia")
	}
	if f.IntelligencePresent {
		active = append(active, "inteligencia")
	}
	fmt.Printf("[senales: %s]\n", strings.Join(active, ", "))
}

func printIntelligence(intel domain.Intelligence) {
	if !intel.HasFindings() {
		return
	}
	if len(intel.BankAccounts) > 0 {
		fmt.Printf("[cuentas: %s]\n", strings.Join(intel.BankAccounts, ", "))
	}
	if len(intel.UPIHandles) > 0 {
		fmt.Printf("[handles UPI: %s]\n", strings.Join(intel.UPIHandles, ", "))
	}
	if len(intel.PhishingLinks) > 0 {
		fmt.Printf("[enlaces: %s]\n", strings.Join(intel.PhishingLinks, ", "))
	}
}
