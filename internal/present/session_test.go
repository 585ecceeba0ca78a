package present

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thispc/internal/folders"
	"thispc/internal/policy"
	"thispc/internal/store"
	"thispc/internal/testutil"
)

type recorder struct {
	renders [][]Row
	denied  int
	partial [][]Failure
	fatal   []error
}

func (r *recorder) Render(rows []Row)                { r.renders = append(r.renders, rows) }
func (r *recorder) NotifyPermissionDenied()          { r.denied++ }
func (r *recorder) NotifyPartialFailure(f []Failure) { r.partial = append(r.partial, f) }
func (r *recorder) NotifyFatal(err error)            { r.fatal = append(r.fatal, err) }

func (r *recorder) last() []Row { return r.renders[len(r.renders)-1] }

func newSession(t *testing.T, s store.Store) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewSession(policy.New(s), rec), rec
}

func TestStartupRenders(t *testing.T) {
	mem := store.NewMemoryFrom(policy.SeedTree())
	require.NoError(t, mem.Write("Explorer/FolderDescriptions/{B4BFCC3A-DB2C-424C-B029-7FE99A87C641}/PropertyBag", folders.PolicyValue, folders.Hide))
	sess, rec := newSession(t, mem)

	require.NoError(t, sess.OnStartup(context.Background()))
	require.Len(t, rec.renders, 1)
	rows := rec.last()
	require.Len(t, rows, 7)
	assert.Equal(t, "Desktop", rows[1].Name)
	assert.False(t, rows[1].Visible)
	assert.True(t, rows[0].Visible)
	assert.Equal(t, Loaded, sess.State())
}

func TestStartupFatal(t *testing.T) {
	sess, rec := newSession(t, store.NewMemory())

	err := sess.OnStartup(context.Background())
	require.ErrorIs(t, err, policy.ErrStoreUnavailable)
	require.Len(t, rec.fatal, 1)
	assert.Empty(t, rec.renders)
	assert.Equal(t, Idle, sess.State())
}

func TestToggleAndCommit(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryFrom(policy.SeedTree())
	sess, rec := newSession(t, mem)
	require.NoError(t, sess.OnStartup(ctx))

	require.NoError(t, sess.Toggle("pictures", false))
	require.NoError(t, sess.Toggle("3d-objects", false))
	require.Error(t, sess.Toggle("recycle-bin", false))

	require.NoError(t, sess.Commit(ctx))
	require.Len(t, rec.renders, 2, "commit re-renders")
	assert.False(t, rec.last()[5].Visible)
	assert.False(t, rec.last()[0].Visible)
	assert.Zero(t, rec.denied)
	assert.Empty(t, rec.partial)

	ok, _ := mem.HasPath(folders.CompanionPath)
	assert.False(t, ok)
}

func TestToggleBeforeLoad(t *testing.T) {
	sess, _ := newSession(t, store.NewMemory())
	assert.Error(t, sess.Toggle("music", false))
}

func TestCommitPermissionDenied(t *testing.T) {
	ctx := context.Background()
	fs := testutil.NewFaultyStore(store.NewMemoryFrom(policy.SeedTree()))
	it, _ := folders.Lookup("desktop")
	fs.Fail(testutil.OpWrite, it.PolicyPath(), store.ErrPermissionDenied)
	sess, rec := newSession(t, fs)
	require.NoError(t, sess.OnStartup(ctx))

	flags := sess.Flags()
	flags[it.ID] = false
	err := sess.OnCommit(ctx, flags)

	require.ErrorIs(t, err, policy.ErrPermissionDenied)
	assert.Equal(t, 1, rec.denied)
	assert.Empty(t, rec.partial)
	assert.Len(t, rec.renders, 2, "state is reloaded after an abort")
	assert.True(t, rec.last()[1].Visible)
	assert.Equal(t, Aborted, sess.State())
}

func TestCommitPartialFailure(t *testing.T) {
	ctx := context.Background()
	fs := testutil.NewFaultyStore(store.NewMemoryFrom(policy.SeedTree()))
	music, _ := folders.Lookup("music")
	fs.Fail(testutil.OpWrite, music.PolicyPath(), errors.New("device not ready"))
	sess, rec := newSession(t, fs)
	require.NoError(t, sess.OnStartup(ctx))

	require.NoError(t, sess.Toggle("music", false))
	require.NoError(t, sess.Toggle("videos", false))
	err := sess.Commit(ctx)

	var applyErr *policy.ApplyError
	require.ErrorAs(t, err, &applyErr)
	require.Len(t, rec.partial, 1)
	require.Len(t, rec.partial[0], 1)
	assert.Equal(t, music.ID, rec.partial[0][0].ID)
	assert.Equal(t, "Music", rec.partial[0][0].Name)
	assert.Equal(t, store.KindStore, rec.partial[0][0].Kind)

	rows := rec.last()
	assert.True(t, rows[4].Visible, "music unchanged")
	assert.False(t, rows[6].Visible, "videos applied")
	assert.Equal(t, Loaded, sess.State())
}

func TestFlagsIsACopy(t *testing.T) {
	sess, _ := newSession(t, store.NewMemoryFrom(policy.SeedTree()))
	require.NoError(t, sess.OnStartup(context.Background()))

	f := sess.Flags()
	f[folders.CompanionID] = false
	assert.True(t, sess.Flags()[folders.CompanionID])
	assert.Equal(t, "applying", Applying.String())
}

func TestPlanFollowsSynchronizerItems(t *testing.T) {
	music, ok := folders.Lookup("music")
	require.True(t, ok)
	videos, ok := folders.Lookup("videos")
	require.True(t, ok)

	sy := policy.New(store.NewMemoryFrom(policy.SeedTree()), policy.WithItems([]folders.Item{music, videos}))
	sess := NewSession(sy, &recorder{})
	require.NoError(t, sess.OnStartup(context.Background()))

	desired := sess.Flags()
	desired[videos.ID] = false
	assert.Equal(t, []policy.Change{{ID: videos.ID, From: true, To: false}}, sess.Plan(desired))
	assert.Empty(t, sess.Plan(sess.Flags()))
}
