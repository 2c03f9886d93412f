package service

import (
	"booking"
	"booking/internal/api/handler/request"
	"booking/internal/api/models"
	"booking/pkg"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAgentTestDB(t *testing.T) {
	booking.InitConfig("../../../.env.test")

	err := booking.DB.AutoMigrate(&models.User{}, &models.Agent{})
	require.NoError(t, err, "Failed to migrate tables")
}

func uniqueAgentEmail() string {
	return fmt.Sprintf("agent-%d@example.com", time.Now().UnixNano())
}

func cleanupAgentUser(t *testing.T, id uint) {
	if id > 0 {
		booking.DB.Unscoped().Delete(&models.User{}, id)
	}
}

func cleanupAgent(t *testing.T, id uint) {
	if id > 0 {
		booking.DB.Unscoped().Delete(&models.Agent{}, id)
	}
}

func TestAgent_CreateAndUpdate(t *testing.T) {
	setupAgentTestDB(t)

	userService := NewUserService()
	auth, err := userService.Register(request.RegisterDTO{
		Email:     uniqueAgentEmail(),
		Password:  "testpassword",
		FirstName: "Ada",
		LastName:  "Agent",
	})
	require.NoError(t, err, "Failed to register user")
	defer cleanupAgentUser(t, auth.User.ID)

	agentService := NewAgentService()

	created, err := agentService.Create(auth.User.ID, request.CreateAgentDTO{
		DisplayName: "Ada's Studio",
		City:        "Lyon",
		HourlyRate:  40,
	})
	require.NoError(t, err, "Failed to create agent profile")
	require.NotZero(t, created.ID)
	defer cleanupAgent(t, created.ID)

	// Creating the profile promotes the account to the agent role.
	promoted, err := userService.GetByID(auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAgent), promoted.Role)

	updated, err := agentService.Update(auth.User.ID, request.UpdateAgentDTO{
		Bio:        pkg.ToPtr("Portrait and event sessions"),
		HourlyRate: pkg.ToPtr(55.0),
	})
	require.NoError(t, err, "Failed to update agent profile")

	assert.Equal(t, "Portrait and event sessions", updated.Bio)
	assert.Equal(t, 55.0, updated.HourlyRate)
	// Fields left nil in the patch are untouched.
	assert.Equal(t, "Ada's Studio", updated.DisplayName)
	assert.Equal(t, "Lyon", updated.City)
}

func TestAgent_Create_DuplicateProfileRejected(t *testing.T) {
	setupAgentTestDB(t)

	userService := NewUserService()
	auth, err := userService.Register(request.RegisterDTO{
		Email:     uniqueAgentEmail(),
		Password:  "testpassword",
		FirstName: "Solo",
		LastName:  "Agent",
	})
	require.NoError(t, err)
	defer cleanupAgentUser(t, auth.User.ID)

	agentService := NewAgentService()

	created, err := agentService.Create(auth.User.ID, request.CreateAgentDTO{DisplayName: "First Profile"})
	require.NoError(t, err)
	defer cleanupAgent(t, created.ID)

	_, err = agentService.Create(auth.User.ID, request.CreateAgentDTO{DisplayName: "Second Profile"})
	require.Error(t, err, "A user may only hold one agent profile")
}

func TestAgent_Update_WithoutProfile(t *testing.T) {
	setupAgentTestDB(t)

	userService := NewUserService()
	auth, err := userService.Register(request.RegisterDTO{
		Email:     uniqueAgentEmail(),
		Password:  "testpassword",
		FirstName: "Plain",
		LastName:  "User",
	})
	require.NoError(t, err)
	defer cleanupAgentUser(t, auth.User.ID)

	_, err = NewAgentService().Update(auth.User.ID, request.UpdateAgentDTO{
		DisplayName: pkg.ToPtr("Nobody"),
	})
	require.Error(t, err, "Updating without an agent profile must fail")
}
