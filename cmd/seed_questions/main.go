package main

import (
	"context"
	"log"
	"time"

	"prepwise/internal/catalog"
	"prepwise/internal/config"
	"prepwise/internal/database"
	"prepwise/internal/domain"
	"prepwise/internal/logger"
	"prepwise/internal/repository"
	"prepwise/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// seedQuestions is the starter catalog content. IDs are assigned at insert
// time so reseeding a wiped database produces fresh rows.
var seedQuestions = []domain.Question{
	{
		Title:       "Tell me about yourself and your product management experience",
		Description: "A common opening question to understand your background and communication style.",
		Category:    catalog.RoleProductManagement,
		Topic:       "Behavioral Questions",
		Difficulty:  domain.DifficultyEasy,
		TimeLimit:   300,
		Tips: []string{
			"Keep it under three minutes",
			"Structure as past, present, future",
			"End with why this role interests you",
		},
		IsPopular: true,
	},
	{
		Title:       "How would you improve our flagship product?",
		Description: "Tests product sense: diagnosing user problems and proposing grounded improvements.",
		Category:    catalog.RoleProductManagement,
		Topic:       "Product Sense",
		Difficulty:  domain.DifficultyMedium,
		TimeLimit:   600,
		Tips: []string{
			"Clarify the goal before proposing features",
			"Segment the users and pick one",
			"Tie each proposal to a metric",
		},
		IsPopular: true,
	},
	{
		Title:       "Describe a program that was slipping. How did you get it back on track?",
		Description: "Looks for structured recovery: root cause, replanning, and stakeholder communication.",
		Category:    catalog.RoleProgramManagement,
		Topic:       "Risk Management",
		Difficulty:  domain.DifficultyMedium,
		TimeLimit:   480,
		Tips: []string{
			"Use a concrete example with dates and numbers",
			"Separate the diagnosis from the fix",
		},
		IsPopular: true,
	},
	{
		Title:       "How do you handle an underperforming senior engineer?",
		Description: "Probes people management judgment: feedback, support plans, and escalation.",
		Category:    catalog.RoleEngineeringManagement,
		Topic:       "Performance Management",
		Difficulty:  domain.DifficultyHard,
		TimeLimit:   600,
		Tips: []string{
			"Start with diagnosis, not discipline",
			"Describe the support you put in place",
			"Be honest about outcomes that did not work",
		},
		IsPopular: true,
	},
	{
		Title:       "Walk me through a difficult decision you made with incomplete information",
		Description: "Assesses decision-making frameworks and comfort with ambiguity.",
		Category:    catalog.RoleGeneralManagement,
		Topic:       "Decision Making",
		Difficulty:  domain.DifficultyMedium,
		TimeLimit:   480,
		Tips: []string{
			"Name the information you were missing",
			"Explain how you bounded the downside",
		},
		IsPopular: true,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	questionRepository := repository.NewSQLXQuestionRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range seedQuestions {
		question := seedQuestions[i]
		question.ID = util.NewULID()
		question.CreatedAt = time.Now()
		question.UpdatedAt = question.CreatedAt

		g.Go(func() error {
			if err := questionRepository.SaveQuestion(gctx, &question); err != nil {
				appLogger.Error("Failed to save question",
					zap.Error(err),
					zap.String("title", question.Title),
				)
				return err
			}
			appLogger.Info("Seeded question",
				zap.String("id", question.ID),
				zap.String("topic", question.Topic),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	appLogger.Info("Seeding complete", zap.Int("count", len(seedQuestions)))
}
