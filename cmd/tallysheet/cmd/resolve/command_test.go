package resolve

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tallysheet/internal/appcontext"
	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/pkg/identifier"
	"github.com/agentstation/tallysheet/pkg/types"
)

func fixture(t *testing.T) config.Inputs {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"membership.csv": "Membership#,FirstName,LastName,EstRating\n100,Ann,Lee,1500\n",
		"roster.csv":     "id,memberId,firstName,lastName\np1,100,Ann,Lee\np2,,Cara,Diaz\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	in := config.Defaults()
	in.Dir = dir
	return in
}

func TestRun_DoesNotNeedMatches(t *testing.T) {
	in := fixture(t)

	lookups, err := Run(context.Background(), &appcontext.Mock{}, in, []string{"p1", "p2", "999", "zz"})
	require.NoError(t, err)
	require.Len(t, lookups, 4)

	assert.True(t, lookups[0].Known)
	assert.Equal(t, identifier.ID("100"), lookups[0].Membership)
	assert.Equal(t, "Ann Lee", lookups[0].Name)
	assert.Equal(t, types.RegistryID, lookups[0].NameSource)
	assert.Equal(t, "1500", lookups[0].Rating)

	assert.True(t, lookups[1].Known)
	assert.True(t, lookups[1].Membership.IsEmpty())
	assert.Equal(t, "Cara Diaz", lookups[1].Name)
	assert.Equal(t, types.RosterInternalID, lookups[1].NameSource)

	assert.False(t, lookups[2].Known)
	assert.Equal(t, identifier.ID("999"), lookups[2].Membership)
	assert.Empty(t, lookups[2].Name)

	assert.False(t, lookups[3].Known)
	assert.True(t, lookups[3].Membership.IsEmpty())
	assert.Equal(t, types.NoneID, lookups[3].NameSource)
}

func TestNewCommand_Table(t *testing.T) {
	in := fixture(t)
	app := &appcontext.Mock{
		InputsFunc:       func() config.Inputs { return in },
		OutputFormatFunc: func() string { return "table" },
	}

	cmd := NewCommand(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"p1"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "ANN LEE")
	assert.Contains(t, out, "REGISTRY")
}

func TestNewCommand_RequiresIdentifier(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
