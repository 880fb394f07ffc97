package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"wordscramble/internal/models"
)

// ReportService mails a parent a summary of a finished play session via
// Amazon SES. It is a no-op when no sender address is configured.
type ReportService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	parentEmail string
	appBaseURL  string
	enabled     bool
}

// NewReportService creates the report service. An empty fromEmail or
// parentEmail disables sending without failing startup.
func NewReportService(ctx context.Context, awsRegion, fromEmail, fromName, parentEmail, appBaseURL string) (*ReportService, error) {
	if fromEmail == "" || parentEmail == "" {
		log.Info().Msg("progress reports disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &ReportService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("progress reports enabled")
	return &ReportService{
		client:      sesv2.NewFromConfig(cfg),
		fromEmail:   fromEmail,
		fromName:    fromName,
		parentEmail: parentEmail,
		appBaseURL:  appBaseURL,
		enabled:     true,
	}, nil
}

// IsEnabled reports whether sending is configured.
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport mails the session summary to the configured parent
// address.
func (s *ReportService) SendProgressReport(ctx context.Context, session *models.PlaySession, rounds []models.Round) error {
	if !s.enabled {
		log.Debug().Int64("session", session.ID).Msg("skipping progress report (service disabled)")
		return nil
	}

	subject := fmt.Sprintf("Word Scramble report: %d points in %d rounds", session.TotalPoints, session.TotalRounds)
	htmlBody, textBody := buildReportBodies(session, rounds, s.appBaseURL)

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.parentEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send progress report to %s: %w", s.parentEmail, err)
	}
	log.Info().Str("to", s.parentEmail).Int64("session", session.ID).Msg("progress report sent")
	return nil
}

// buildReportBodies renders the HTML and plain-text versions of the report.
func buildReportBodies(session *models.PlaySession, rounds []models.Round, baseURL string) (string, string) {
	var htmlRows, textRows strings.Builder
	for _, rd := range rounds {
		outcome := "skipped"
		if rd.Solved {
			outcome = fmt.Sprintf("solved for %d points", rd.PointsEarned)
			if rd.HintUsed {
				outcome += " (hint used)"
			}
		}
		fmt.Fprintf(&htmlRows, "<tr><td>%s</td><td>%s</td></tr>\n", rd.WordText, outcome)
		fmt.Fprintf(&textRows, "  - %s: %s\n", rd.WordText, outcome)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { width: 100%%; border-collapse: collapse; }
		td { padding: 6px 10px; border-bottom: 1px solid #ddd; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Word Scramble Report</h1>
		</div>
		<div class="content">
			<p>Words solved: <strong>%d of %d</strong> (%.0f%%)</p>
			<p>Points earned: <strong>%d</strong></p>
			<table>
%s			</table>
			<p><a href="%s">Open Word Scramble</a></p>
		</div>
	</div>
</body>
</html>`, session.RoundsWon, session.TotalRounds, session.WinRate()*100, session.TotalPoints, htmlRows.String(), baseURL)

	text := fmt.Sprintf(`Word Scramble Report

Words solved: %d of %d (%.0f%%)
Points earned: %d

Rounds:
%s
Open Word Scramble: %s
`, session.RoundsWon, session.TotalRounds, session.WinRate()*100, session.TotalPoints, textRows.String(), baseURL)

	return html, text
}
