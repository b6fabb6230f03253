/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/seshstats/sesh-tools/internal/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	From   string
	To     []string
	ApiKey string
	DryRun bool
}

var emailCmd = &cobra.Command{
	Use:   "email <address...>",
	Short: "Emails the statistics report",
	Long:  `Computes the full report and sends it to each address via SendGrid.`,
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := EmailConfig{
			From:   viper.GetString("from"),
			To:     args,
			ApiKey: viper.GetString("sendgrid_api_key"),
			DryRun: viper.GetBool("dryRun"),
		}
		err := sendReport(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))
}

func sendReport(config EmailConfig) error {
	result, all, err := loadDataset(nil)
	if err != nil {
		return err
	}

	report := stats.Derive(result, all, time.Now())
	body, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("sendReport: %w", err)
	}

	subject := fmt.Sprintf("Listening report %s", time.Now().Format("2006-01-02"))
	htmlBody := "<pre>" + html.EscapeString(string(body)) + "</pre>"

	if config.DryRun {
		for _, to := range config.To {
			fmt.Printf("Would have sent email to %s: \nsubject: %s\n%s\n", to, subject, body)
		}
		return nil
	}

	if config.ApiKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	client := sendgrid.NewSendClient(config.ApiKey)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)
	for _, to := range config.To {
		if err := limiter.Wait(context.Background()); err != nil {
			return fmt.Errorf("sendReport: %w", err)
		}

		message := mail.NewSingleEmail(
			mail.NewEmail("sesh-tools", config.From), subject,
			mail.NewEmail("", to), string(body), htmlBody)
		err := retry.Do(
			func() error {
				response, err := client.Send(message)
				if err != nil {
					return err
				}
				if response.StatusCode >= 400 {
					return fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, response.Body)
				}
				return nil
			},
			retry.Attempts(3),
		)
		if err != nil {
			return fmt.Errorf("sending to %s: %w", to, err)
		}
		fmt.Printf("Sent report to %s\n", to)
	}

	return nil
}
