package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/raysh454/smartshot/internal/session"
	"github.com/raysh454/smartshot/internal/smartui"
	"github.com/raysh454/smartshot/internal/testutil"
)

func remoteJob(t *testing.T) Job {
	t.Helper()
	cfg, err := session.NewRemoteConfig("alice", "key")
	require.NoError(t, err)
	return Job{Session: cfg, URL: "https://www.lambdatest.com", SnapshotName: "screenshot"}
}

func TestRun_RemoteHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := NewMockSessionOpener(ctrl)
	capturer := NewMockSnapshotCapturer(ctrl)
	sess := NewMockSession(ctrl)

	job := remoteJob(t)
	want := &smartui.ArtifactRef{ID: "a1", Name: "screenshot", CapturedAt: time.Now()}

	sess.EXPECT().ID().Return("sess-1").AnyTimes()
	gomock.InOrder(
		opener.EXPECT().Open(gomock.Any(), job.Session).Return(sess, nil),
		sess.EXPECT().Navigate(gomock.Any(), "https://www.lambdatest.com").Return(nil),
		capturer.EXPECT().Snapshot(gomock.Any(), sess, "screenshot", smartui.Options(nil)).Return(want, nil),
		sess.EXPECT().Close().Return(nil).Times(1),
	)

	got, err := New(opener, capturer, nil).Run(context.Background(), job)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRun_ClosesOnceWhenNavigationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := NewMockSessionOpener(ctrl)
	capturer := NewMockSnapshotCapturer(ctrl)
	sess := NewMockSession(ctrl)

	navErr := errors.Join(session.ErrNavigation, errors.New("net::ERR_NAME_NOT_RESOLVED"))
	sess.EXPECT().ID().Return("sess-1").AnyTimes()
	opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(sess, nil)
	sess.EXPECT().Navigate(gomock.Any(), gomock.Any()).Return(navErr)
	sess.EXPECT().Close().Return(nil).Times(1)
	// capturer must not be called: no EXPECT on it

	ref, err := New(opener, capturer, nil).Run(context.Background(), remoteJob(t))
	assert.ErrorIs(t, err, session.ErrNavigation)
	assert.Nil(t, ref)
}

func TestRun_ClosesOnceWhenCaptureFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := NewMockSessionOpener(ctrl)
	capturer := NewMockSnapshotCapturer(ctrl)
	sess := NewMockSession(ctrl)

	sess.EXPECT().ID().Return("sess-1").AnyTimes()
	opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(sess, nil)
	sess.EXPECT().Navigate(gomock.Any(), gomock.Any()).Return(nil)
	capturer.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, smartui.ErrCapture)
	sess.EXPECT().Close().Return(nil).Times(1)

	ref, err := New(opener, capturer, nil).Run(context.Background(), remoteJob(t))
	assert.ErrorIs(t, err, smartui.ErrCapture)
	assert.Nil(t, ref)
}

func TestRun_OpenFailureSkipsEverythingElse(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := NewMockSessionOpener(ctrl)
	capturer := NewMockSnapshotCapturer(ctrl)

	opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, session.ErrConnection)

	ref, err := New(opener, capturer, nil).Run(context.Background(), remoteJob(t))
	assert.ErrorIs(t, err, session.ErrConnection)
	assert.Nil(t, ref)
}

func TestRun_CloseErrorSurfacesOnlyAfterSuccess(t *testing.T) {
	closeErr := errors.New("quit failed")

	t.Run("after success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := NewMockSessionOpener(ctrl)
		capturer := NewMockSnapshotCapturer(ctrl)
		sess := NewMockSession(ctrl)

		sess.EXPECT().ID().Return("sess-1").AnyTimes()
		opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(sess, nil)
		sess.EXPECT().Navigate(gomock.Any(), gomock.Any()).Return(nil)
		capturer.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&smartui.ArtifactRef{ID: "a1"}, nil)
		sess.EXPECT().Close().Return(closeErr)

		ref, err := New(opener, capturer, nil).Run(context.Background(), remoteJob(t))
		assert.ErrorIs(t, err, closeErr)
		assert.Nil(t, ref)
	})

	t.Run("after failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := NewMockSessionOpener(ctrl)
		capturer := NewMockSnapshotCapturer(ctrl)
		sess := NewMockSession(ctrl)
		logger := &testutil.DummyLogger{}

		sess.EXPECT().ID().Return("sess-1").AnyTimes()
		opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(sess, nil)
		sess.EXPECT().Navigate(gomock.Any(), gomock.Any()).Return(session.ErrNavigation)
		sess.EXPECT().Close().Return(closeErr)

		_, err := New(opener, capturer, logger).Run(context.Background(), remoteJob(t))
		assert.ErrorIs(t, err, session.ErrNavigation)
		assert.NotErrorIs(t, err, closeErr)
		assert.Equal(t, 1, logger.WarnCount())
	})
}

func TestRun_RequiresURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := remoteJob(t)
	job.URL = ""

	_, err := New(NewMockSessionOpener(ctrl), NewMockSnapshotCapturer(ctrl), nil).Run(context.Background(), job)
	assert.ErrorIs(t, err, session.ErrConfig)
}

// The local scenario end to end with the recording dummy instead of mocks.
func TestRun_LocalWithDummySession(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := NewMockSessionOpener(ctrl)
	capturer := NewMockSnapshotCapturer(ctrl)

	cfg, err := session.NewLocalConfig(false)
	require.NoError(t, err)
	dummy := &testutil.DummySession{SessionID: "target-1"}

	opener.EXPECT().Open(gomock.Any(), cfg).Return(dummy, nil)
	capturer.EXPECT().Snapshot(gomock.Any(), dummy, "screenshot", gomock.Any()).
		DoAndReturn(func(ctx context.Context, d smartui.Driver, name string, _ smartui.Options) (*smartui.ArtifactRef, error) {
			u, err := d.CurrentURL(ctx)
			if err != nil {
				return nil, err
			}
			return &smartui.ArtifactRef{ID: "a2", Name: name, URL: u, SessionID: d.ID()}, nil
		})

	ref, err := New(opener, capturer, nil).Run(context.Background(), Job{
		Session:      cfg,
		URL:          "https://www.lambdatest.com",
		SnapshotName: "screenshot",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.lambdatest.com", ref.URL)
	assert.Equal(t, "target-1", ref.SessionID)
	assert.Equal(t, 1, dummy.Closes)
	assert.Equal(t, []string{"https://www.lambdatest.com"}, dummy.Visited)
}
