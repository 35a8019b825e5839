package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpath-labs/lms-backend/pkg/config"
)

func TestAppConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg := &AppConfig{}
	require.NoError(t, config.GetConfigFromEnvVars(cfg))

	assert.Equal(t, "us-east-1", cfg.Agents.Region)
	assert.Equal(t, "/health/live", cfg.Health.LivenessPath)
	assert.Equal(t, "/health/ready", cfg.Health.ReadinessPath)
	assert.True(t, cfg.Metrics.EnableHTTPMetrics)
	assert.False(t, cfg.Metrics.ExposeMetrics)
}

func TestAgentsConfigFromEnv(t *testing.T) {
	os.Clearenv()
	t.Setenv("AWS_REGION_NAME", "eu-west-1")
	t.Setenv("COURSE_CREATOR_AGENT_ID", "CCAGENT")
	t.Setenv("COURSE_CREATOR_AGENT_ALIAS_ID", "CCALIAS")
	t.Setenv("TRAINER_AGENT_ID", "TRAGENT")
	t.Setenv("TRAINER_AGENT_ALIAS_ID", "TRALIAS")

	cfg := &AppConfig{}
	require.NoError(t, config.GetConfigFromEnvVars(cfg))

	assert.Equal(t, "eu-west-1", cfg.Agents.Region)

	courseCreator := cfg.Agents.CourseCreator()
	assert.Equal(t, "course_creator", courseCreator.Name)
	assert.Equal(t, "CCAGENT", courseCreator.ID)
	assert.Equal(t, "CCALIAS", courseCreator.AliasID)
	assert.NoError(t, courseCreator.Configured())

	trainer := cfg.Agents.Trainer()
	assert.Equal(t, "trainer", trainer.Name)
	assert.Equal(t, "TRAGENT", trainer.ID)
	assert.Equal(t, "TRALIAS", trainer.AliasID)
	assert.NoError(t, trainer.Configured())
}

func TestAgentsConfigMissingIDsStillLoads(t *testing.T) {
	// Agent IDs are provisioned separately from deployment; the server must
	// boot without them and fail at invocation time instead.
	os.Clearenv()

	cfg := &AppConfig{}
	require.NoError(t, config.GetConfigFromEnvVars(cfg))

	assert.Error(t, cfg.Agents.CourseCreator().Configured())
	assert.Error(t, cfg.Agents.Trainer().Configured())
}
