package usecase

import (
	"fmt"

	"github.com/3-lines-studio/svger/internal/config"
)

type InitInput struct {
	ConfigPath string
	Config     config.Config
	// CreateSource creates the configured source directory when it
	// does not exist yet.
	CreateSource bool
}

type InitOutput struct {
	ConfigPath string
	Success    bool
	Error      error
}

type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("svger init")

	if err := input.Config.Validate(); err != nil {
		return InitOutput{
			Success: false,
			Error:   fmt.Errorf("invalid config: %w", err),
		}
	}

	if err := config.Init(s.fs, input.ConfigPath, input.Config); err != nil {
		return InitOutput{
			Success: false,
			Error:   err,
		}
	}
	s.cli.PrintFile(input.ConfigPath)

	if input.CreateSource && !s.fs.FileExists(input.Config.Source) {
		if err := s.fs.MkdirAll(input.Config.Source, 0755); err != nil {
			return InitOutput{
				ConfigPath: input.ConfigPath,
				Success:    false,
				Error:      fmt.Errorf("failed to create source directory: %w", err),
			}
		}
		s.cli.PrintStep("Created %s", input.Config.Source)
	}

	s.cli.PrintSuccess("Project initialized")
	return InitOutput{
		ConfigPath: input.ConfigPath,
		Success:    true,
	}
}
