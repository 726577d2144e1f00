package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"signup-qa/internal/apitest"
)

func main() {
	baseURL := flag.String("base-url", "", "Base URL of the signup API (required)")
	attempts := flag.Int("attempts", apitest.DefaultProbeAttempts, "Resend attempts to count before capturing the blocked response")
	prefix := flag.String("email-prefix", "probe", "Prefix for the generated probe email")
	domain := flag.String("email-domain", "example.com", "Domain for the generated probe email")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("base-url is required")
	}

	runID := uuid.NewString()
	fmt.Printf("Probe run %s against %s\n", runID, *baseURL)

	client := apitest.NewClientForURL(*baseURL, *timeout)
	defer client.Close()
	signup := apitest.NewSignupClient(client)

	factory := apitest.Factory{EmailPrefix: *prefix, EmailDomain: *domain}
	payload := factory.NewSignupPayload()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := signup.CreateUser(ctx, payload)
	if err != nil {
		log.Fatalf("failed to create probe user: %v", err)
	}
	if err := apitest.ExpectStatus(res, 200, 201); err != nil {
		log.Fatalf("probe user signup failed: %v", err)
	}
	fmt.Printf("Created probe user %s\n", payload.Email)

	result, err := signup.ProbeResendRateLimit(ctx, payload.Email, *attempts)
	if err != nil {
		log.Fatalf("probe failed: %v", err)
	}

	fmt.Printf("Successful resend attempts: %d/%d\n", result.SuccessfulAttempts, *attempts)
	fmt.Printf("Blocked response: status=%d code=%s\n",
		apitest.Status(result.BlockedResult), result.BlockedResult.Code())
	fmt.Printf("Blocked body: %s\n", result.BlockedResult.Text())
}
