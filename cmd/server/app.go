package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gardenguru/config"
	"gardenguru/database"
	"gardenguru/pkg/agent"
	agentSvcImp "gardenguru/pkg/agent/serviceImp"
	"gardenguru/pkg/ai"
	"gardenguru/pkg/care"
	"gardenguru/pkg/careguide"
	plantrepo "gardenguru/pkg/plant/repository"
	plantRepoImp "gardenguru/pkg/plant/repositoryImp"
	plantSvcImp "gardenguru/pkg/plant/serviceImp"
	"gardenguru/pkg/plantapi"
	taskRepoImp "gardenguru/pkg/task/repositoryImp"
	taskSvcImp "gardenguru/pkg/task/serviceImp"
)

const careGuideTimeout = 15 * time.Second

type app struct {
	db       *gorm.DB
	llm      ai.Client
	plantAPI *plantapi.Client
	plants   *plantSvcImp.PlantSvc
	tasks    *taskSvcImp.TaskSvc
	agent    *agentSvcImp.AgentSvc
}

func newApp(cfg config.AppConfig) (*app, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	defaults, err := care.LoadDefaults(cfg.CareDefaultsCSV, cfg.CareDefaultsXLSX)
	if err != nil {
		log.Warn().Err(err).Msg("[app] care defaults, using built-ins for the rest")
	}

	llm := ai.New(cfg.LLMProvider, cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if llm == nil {
		log.Warn().Str("provider", cfg.LLMProvider).Msg("[app] no generative model credentials, /api/agent will report a configuration error")
	}
	papi := plantapi.New(cfg.PerenualAPIKey, cfg.PlantNetAPIKey, cfg.PlantNetProject, cfg.LLMTimeout)

	var guides *careguide.Fetcher
	if len(cfg.CareGuideDomains) > 0 {
		guides = careguide.New(cfg.CareGuideDomains, 0, careGuideTimeout)
	} else {
		log.Info().Msg("[app] CARE_GUIDE_ALLOWED_DOMAINS empty, care guide import disabled")
	}

	plantRepo := plantRepoImp.New(db)
	taskRepo := taskRepoImp.New(db)

	return &app{
		db:       db,
		llm:      llm,
		plantAPI: papi,
		plants:   newPlantService(plantRepo, defaults, papi, guides),
		tasks:    taskSvcImp.NewTaskService(taskRepo, plantRepo),
		agent:    agentSvcImp.NewAgentService(agent.NewSynthesizer(llm), taskRepo),
	}, nil
}

// newPlantService keeps a nil fetcher a nil interface.
func newPlantService(r plantrepo.PlantRepository, d *care.Defaults, papi *plantapi.Client, guides *careguide.Fetcher) *plantSvcImp.PlantSvc {
	if guides == nil {
		return plantSvcImp.NewPlantService(r, d, papi, nil)
	}
	return plantSvcImp.NewPlantService(r, d, papi, guides)
}

func (a *app) Close() error { return database.Close(a.db) }
