package config

import "github.com/skillpath-labs/lms-backend/internal/agents"

// AgentsConfig names the deployed Bedrock agents this backend forwards to.
// The agent and alias IDs are not required at startup: the original
// deployment workflow provisions them separately, so a missing ID surfaces
// as an invocation error (and a failing readiness probe) rather than a
// refusal to boot.
type AgentsConfig struct {
	// Region is the AWS region hosting the Bedrock agents
	Region string `env:"AWS_REGION_NAME" yaml:"aws_region" default:"us-east-1"`

	// CourseCreatorID is the Bedrock agent ID of the course-creator agent
	CourseCreatorID string `env:"COURSE_CREATOR_AGENT_ID" yaml:"course_creator_agent_id"`

	// CourseCreatorAliasID is the alias ID of the course-creator agent
	CourseCreatorAliasID string `env:"COURSE_CREATOR_AGENT_ALIAS_ID" yaml:"course_creator_agent_alias_id"`

	// TrainerID is the Bedrock agent ID of the trainer agent
	TrainerID string `env:"TRAINER_AGENT_ID" yaml:"trainer_agent_id"`

	// TrainerAliasID is the alias ID of the trainer agent
	TrainerAliasID string `env:"TRAINER_AGENT_ALIAS_ID" yaml:"trainer_agent_alias_id"`
}

// CourseCreator returns the course-creator agent identifiers.
func (c AgentsConfig) CourseCreator() agents.Agent {
	return agents.Agent{
		Name:    "course_creator",
		ID:      c.CourseCreatorID,
		AliasID: c.CourseCreatorAliasID,
	}
}

// Trainer returns the trainer agent identifiers.
func (c AgentsConfig) Trainer() agents.Agent {
	return agents.Agent{
		Name:    "trainer",
		ID:      c.TrainerID,
		AliasID: c.TrainerAliasID,
	}
}
