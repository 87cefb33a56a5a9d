package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"honeypot-llm/internal/domain"
	"honeypot-llm/internal/llm"
	"honeypot-llm/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// Scenario define un mensaje de estafa guionado y el comportamiento esperado
// del motor.
type Scenario struct {
	Name            string
	Input           string
	ExpectedVerdict domain.Verdict
	ExpectedReply   string
	ExpectUPI       []string
	ExpectAccounts  []string
}

// Harness determinista: corre los guiones contra el motor con un delegado
// mock y verifica veredicto, plantilla elegida y extraccion. Sale con codigo 1
// si algun guion falla.
func main() {
	ctx := context.Background()
	logger := zap.NewNop()

	mock := &llm.MockClient{Response: "Oh dear, my grandson usually helps me with these things."}
	delegate := service.NewGenerationDelegate(mock, "", 5*time.Second, nil, logger)
	engine := service.NewEngine(service.NewSignalClassifier(service.DefaultVocabulary()), delegate, logger)

	scenarios := []Scenario{
		{
			Name:            "pago urgente via gpay",
			Input:           "Please send 500 rupees via GPay urgently, your account is blocked",
			ExpectedVerdict: domain.VerdictSuspicious,
			ExpectedReply:   service.ReplyPaymentStall,
		},
		{
			Name:            "amenaza de suspension",
			Input:           "Your bank account will be suspended, verify with the OTP now",
			ExpectedVerdict: domain.VerdictSuspicious,
			ExpectedReply:   service.ReplyConfusionProbe,
		},
		{
			Name:            "extraccion de identificadores",
			Input:           "Send money to 9876543210@ybl account 445566778899",
			ExpectedVerdict: domain.VerdictSuspicious,
			ExpectedReply:   service.ReplyPaymentStall,
			ExpectUPI:       []string{"9876543210@ybl"},
			ExpectAccounts:  []string{"445566778899"},
		},
		{
			Name:            "enlace solo, delega al mock",
			Input:           "claim your prize at http://win-big.example.com/claim",
			ExpectedVerdict: domain.VerdictSuspicious,
			ExpectedReply:   mock.Response,
		},
		{
			Name:            "mensaje benigno",
			Input:           "Hi, how are you doing today?",
			ExpectedVerdict: domain.VerdictSafe,
			ExpectedReply:   service.ReplyNeutralProbe,
		},
	}

	failures := 0
	for i, sc := range scenarios {
		fmt.Printf("%s[%d/%d]%s %s\n", colorCyan, i+1, len(scenarios), colorReset, sc.Name)

		history := []domain.Message{{Role: domain.RoleScammer, Content: sc.Input}}
		result, err := engine.Evaluate(ctx, "scenario-check", sc.Input, history)
		if err != nil {
			log.Fatalf("engine evaluate failed: %v", err)
		}

		ok := true
		if result.Verdict != sc.ExpectedVerdict {
			fmt.Printf("  veredicto: esperado %q, obtenido %q\n", sc.ExpectedVerdict, result.Verdict)
			ok = false
		}
		if result.Reply != sc.ExpectedReply {
			fmt.Printf("  respuesta: esperada %q, obtenida %q\n", sc.ExpectedReply, result.Reply)
			ok = false
		}
		if !containsAll(result.Intelligence.UPIHandles, sc.ExpectUPI) {
			fmt.Printf("  handles UPI: esperados %v, obtenidos %v\n", sc.ExpectUPI, result.Intelligence.UPIHandles)
			ok = false
		}
		if !containsAll(result.Intelligence.BankAccounts, sc.ExpectAccounts) {
			fmt.Printf("  cuentas: esperadas %v, obtenidas %v\n", sc.ExpectAccounts, result.Intelligence.BankAccounts)
			ok = false
		}

		if ok {
			fmt.Printf("  %sOK%s\n", colorGreen, colorReset)
		} else {
			fmt.Printf("  %sFALLO%s\n", colorRed, colorReset)
			failures++
		}
	}

	fmt.Printf("\n%d/%d guiones correctos\n", len(scenarios)-failures, len(scenarios))
	if failures > 0 {
		os.Exit(1)
	}
}

func containsAll(got, want []string) bool {
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
