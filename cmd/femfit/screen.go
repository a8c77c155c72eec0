// ABOUTME: CLI commands for the pelvic floor and bone density screening.
// ABOUTME: Lists questions for the user's age group and records answers.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
	"github.com/scar96-claude/femtech-fitness-app/internal/screening"
)

var screenDemographic string

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Health screening questions",
	Long: `Answer the health screening to turn on safety filters.

A yes to any pelvic question sets the pelvic floor risk flag, which removes
high-impact and high-pressure exercises. A yes to any bone question sets the
bone density risk flag, which removes spinal flexion and loaded rotation.

EXAMPLES:

  femfit screen questions
  femfit screen answer pelvic-1=yes pelvic-2=no bone-1=no`,
}

var screenQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List screening questions",
	Long: `List the screening questions that apply to you.

Your age picks the question set. Without a profile, pass --demographic
(reproductive or perimenopause) or see every question.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		demographic := models.Demographic(screenDemographic)
		if demographic == "" {
			if userID, err := currentUser(); err == nil {
				p, err := db.Profile(cmd.Context(), userID)
				if err != nil {
					return err
				}
				if p != nil {
					demographic = router.DemographicFor(p.DateOfBirth, now())
				}
			}
		}

		var questions []screening.Question
		switch demographic {
		case "":
			questions = screening.All()
		case models.DemographicReproductive, models.DemographicPerimenopause:
			questions = screening.QuestionsFor(demographic)
		default:
			return fmt.Errorf("unknown demographic: %s (use reproductive or perimenopause)", demographic)
		}

		faint := color.New(color.Faint)
		for _, q := range questions {
			fmt.Printf("%s %s %s\n",
				padRight(q.ID, 9),
				faint.Sprint(padRight(string(q.Category), 13)),
				q.Text)
		}
		return nil
	},
}

var screenAnswerCmd = &cobra.Command{
	Use:   "answer <id=yes|no>...",
	Short: "Record screening answers",
	Long: `Score screening answers and store the resulting risk flags on your profile.

Answers replace the previous screening result, so include every yes answer.
Unanswered questions count as no.

EXAMPLES:

  femfit screen answer pelvic-1=yes
  femfit screen answer pelvic-1=no pelvic-2=no bone-1=yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		responses, err := parseAnswers(args)
		if err != nil {
			return err
		}

		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}

		result := screening.Process(responses)
		result.Apply(p)
		if err := db.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		color.Green("✓ Screening saved for %s", p.UserID)
		fmt.Printf("  Pelvic floor risk: %s\n", yesNo(result.PelvicRisk))
		fmt.Printf("  Bone density risk: %s\n", yesNo(result.BoneDensityRisk))
		if len(result.FlaggedQuestionIDs) > 0 {
			fmt.Printf("  Flagged: %s\n", strings.Join(result.FlaggedQuestionIDs, ", "))
		}
		return nil
	},
}

func parseAnswers(args []string) ([]screening.Response, error) {
	responses := make([]screening.Response, 0, len(args))
	for _, arg := range args {
		id, value, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid answer %q (use id=yes or id=no)", arg)
		}
		if _, known := screening.QuestionByID(id); !known {
			return nil, fmt.Errorf("unknown question: %s", id)
		}
		var answer bool
		switch strings.ToLower(value) {
		case "yes", "y", "true":
			answer = true
		case "no", "n", "false":
		default:
			return nil, fmt.Errorf("invalid answer %q for %s (use yes or no)", value, id)
		}
		responses = append(responses, screening.Response{QuestionID: id, Answer: answer})
	}
	return responses, nil
}

func yesNo(b bool) string {
	if b {
		return color.YellowString("yes")
	}
	return "no"
}

func init() {
	screenQuestionsCmd.Flags().StringVarP(&screenDemographic, "demographic", "d", "", "reproductive or perimenopause")

	screenCmd.AddCommand(screenQuestionsCmd, screenAnswerCmd)
	rootCmd.AddCommand(screenCmd)
}
