package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/isvdebug/internal/forceide"
	"github.com/temirov/isvdebug/internal/localization"
	pathutils "github.com/temirov/isvdebug/internal/utils/path"
)

const (
	projectNamePromptErrorTemplateConstant       = "project name prompt failed: %w"
	projectDirectoryResolveErrorTemplateConstant = "unable to resolve project output directory %s: %w"
)

var projectOutputDirectoryNormalizer = pathutils.NewOutputDirectoryNormalizer()

// ProjectSettings are the operator-supplied project values known before gathering.
type ProjectSettings struct {
	ProjectName     string
	OutputDirectory string
}

// ProjectGatherer resolves the project name and output directory for a bootstrap run.
type ProjectGatherer struct {
	prompter   forceide.TextPrompter
	localizer  localization.Localizer
	fileSystem FileSystem
}

// NewProjectGatherer constructs a ProjectGatherer. A nil file system defaults to OSFileSystem.
func NewProjectGatherer(prompter forceide.TextPrompter, localizer localization.Localizer, fileSystem FileSystem) (*ProjectGatherer, error) {
	if prompter == nil {
		return nil, forceide.ErrPrompterNotConfigured
	}
	if localizer == nil {
		localizer = localization.NewEnglishLocalizer()
	}
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	return &ProjectGatherer{prompter: prompter, localizer: localizer, fileSystem: fileSystem}, nil
}

// Gather completes the pipeline context for credentials.
// The project name is prompted for only when settings leave it empty; a
// dismissed or empty answer cancels.
func (gatherer *ProjectGatherer) Gather(executionContext context.Context, credentials forceide.Credentials, settings ProjectSettings) (PipelineContext, bool, error) {
	projectName := strings.TrimSpace(settings.ProjectName)
	if len(projectName) == 0 {
		promptedName, provided, promptError := gatherer.prompter.PromptForText(executionContext, forceide.PromptRequest{
			Label: gatherer.localizer.Localize(localization.KeyProjectNamePrompt),
		})
		if promptError != nil {
			return PipelineContext{}, false, fmt.Errorf(projectNamePromptErrorTemplateConstant, promptError)
		}
		projectName = strings.TrimSpace(promptedName)
		if !provided || len(projectName) == 0 {
			return PipelineContext{}, false, nil
		}
	}

	outputDirectory := projectOutputDirectoryNormalizer.Normalize(settings.OutputDirectory)
	absoluteDirectory, absError := gatherer.fileSystem.Abs(outputDirectory)
	if absError != nil {
		return PipelineContext{}, false, fmt.Errorf(projectDirectoryResolveErrorTemplateConstant, outputDirectory, absError)
	}

	return PipelineContext{
		LoginURL:    credentials.LoginURL,
		SessionID:   credentials.SessionID,
		ProjectName: projectName,
		ProjectURI:  absoluteDirectory,
	}, true, nil
}
