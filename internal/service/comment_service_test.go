package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

func TestCreateCommentAlwaysStartsUnapproved(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})

	svc := NewCommentService(gdb, 0)
	created, err := svc.Create(context.Background(), CreateCommentInput{
		PostID: post.ID, Nickname: "visitor", Content: "hi",
	})
	require.NoError(t, err)
	assert.False(t, created.IsApproved)

	var stored models.Comment
	require.NoError(t, gdb.First(&stored, created.ID).Error)
	assert.False(t, stored.IsApproved)
}

func TestCreateCommentTargetsMustExist(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})

	svc := NewCommentService(gdb, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCommentInput{PostID: 999, Nickname: "v", Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	missing := uint(999)
	_, err = svc.Create(ctx, CreateCommentInput{PostID: post.ID, Nickname: "v", Content: "hi", ParentID: &missing})
	assert.ErrorIs(t, err, ErrParentCommentNotFound)
}

func TestApprovedThreadOrdering(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	c1 := seedComment(t, gdb, post.ID, nil, true, base)
	c2 := seedComment(t, gdb, post.ID, nil, true, base.Add(10*time.Minute))
	r1 := seedComment(t, gdb, post.ID, &c2.ID, true, base.Add(20*time.Minute))
	r2 := seedComment(t, gdb, post.ID, &c2.ID, true, base.Add(30*time.Minute))

	svc := NewCommentService(gdb, 0)
	thread, err := svc.ApprovedThread(context.Background(), "p")
	require.NoError(t, err)

	// Top level is newest first, replies oldest first.
	require.Len(t, thread, 2)
	assert.Equal(t, c2.ID, thread[0].ID)
	assert.Equal(t, c1.ID, thread[1].ID)
	require.Len(t, thread[0].Replies, 2)
	assert.Equal(t, r1.ID, thread[0].Replies[0].ID)
	assert.Equal(t, r2.ID, thread[0].Replies[1].ID)
	assert.Empty(t, thread[1].Replies)
}

func TestApprovedThreadHidesUnapprovedSubtrees(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	hiddenRoot := seedComment(t, gdb, post.ID, nil, false, base)
	// Approved reply under an unapproved parent: unreachable.
	seedComment(t, gdb, post.ID, &hiddenRoot.ID, true, base.Add(time.Minute))
	visible := seedComment(t, gdb, post.ID, nil, true, base.Add(2*time.Minute))

	svc := NewCommentService(gdb, 0)
	thread, err := svc.ApprovedThread(context.Background(), "p")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, visible.ID, thread[0].ID)
	assert.Empty(t, thread[0].Replies)
}

func TestApprovedThreadResolvesDraftPosts(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	draft := seedPost(t, gdb, author.ID, postSpec{title: "d", slug: "draft", content: "x", published: false})
	seedComment(t, gdb, draft.ID, nil, true, time.Time{})

	svc := NewCommentService(gdb, 0)
	thread, err := svc.ApprovedThread(context.Background(), "draft")
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	_, err = svc.ApprovedThread(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestApproveCommentIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})
	comment := seedComment(t, gdb, post.ID, nil, false, time.Time{})

	svc := NewCommentService(gdb, 0)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, comment.ID))
	require.NoError(t, svc.Approve(ctx, comment.ID), "second approval is a no-op, not an error")

	var stored models.Comment
	require.NoError(t, gdb.First(&stored, comment.ID).Error)
	assert.True(t, stored.IsApproved)

	assert.ErrorIs(t, svc.Approve(ctx, 999), ErrCommentNotFound)
}

func TestDeleteCommentLeavesRepliesBehind(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "p", slug: "p", content: "x", published: true})
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	parent := seedComment(t, gdb, post.ID, nil, true, base)
	reply := seedComment(t, gdb, post.ID, &parent.ID, true, base.Add(time.Minute))

	svc := NewCommentService(gdb, 0)
	require.NoError(t, svc.Delete(context.Background(), parent.ID))

	// The reply row survives but its subtree is unreachable in the thread.
	var stored models.Comment
	require.NoError(t, gdb.First(&stored, reply.ID).Error)

	thread, err := svc.ApprovedThread(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, thread)

	assert.ErrorIs(t, svc.Delete(context.Background(), parent.ID), ErrCommentNotFound)
}

func TestListAllModeration(t *testing.T) {
	gdb := newTestDB(t)
	author := seedUser(t, gdb, "admin")
	post := seedPost(t, gdb, author.ID, postSpec{title: "My Post", slug: "my-post", content: "x", published: true})
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	seedComment(t, gdb, post.ID, nil, true, base)
	pending := seedComment(t, gdb, post.ID, nil, false, base.Add(time.Minute))
	orphaned := seedComment(t, gdb, 424242, nil, false, base.Add(2*time.Minute))

	svc := NewCommentService(gdb, 0)
	ctx := context.Background()

	all, err := svc.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	f := false
	pendingOnly, err := svc.ListAll(ctx, &f)
	require.NoError(t, err)
	require.Len(t, pendingOnly, 2)
	for _, item := range pendingOnly {
		assert.False(t, item.IsApproved)
		switch item.ID {
		case pending.ID:
			assert.Equal(t, "My Post", item.PostTitle)
			require.NotNil(t, item.PostSlug)
			assert.Equal(t, "my-post", *item.PostSlug)
		case orphaned.ID:
			assert.Equal(t, "deleted post", item.PostTitle)
			assert.Nil(t, item.PostSlug)
		}
	}
}
