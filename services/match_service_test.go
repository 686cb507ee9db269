// services/match_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"pickleball/apperr"
	"pickleball/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchFixture sets up a group with four registered members and returns the
// group id plus the member ids in creation order.
func matchFixture(t *testing.T, svc *GroupService) (uint, []uint) {
	t.Helper()

	creator := createTestUser(t, svc.db, "p1@example.com", "Player One")
	group, err := svc.CreateGroup("Match Night", creator.ID)
	require.NoError(t, err)

	ids := []uint{creator.ID}
	for i := 2; i <= 4; i++ {
		u := createTestUser(t, svc.db,
			fmt.Sprintf("p%d@example.com", i),
			fmt.Sprintf("Player %d", i))
		_, err := svc.AddMemberByEmail(group.ID, *u.Email)
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}
	return group.ID, ids
}

func intPtr(v int) *int { return &v }

func TestCreateMatchRequiredFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	_, err := svc.CreateMatch(CreateMatchInput{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateMatchInvalidType(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	_, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  "TRIPLES",
		TeamOneIDs: ids[:1],
		TeamTwoIDs: ids[1:2],
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateMatchGroupNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	missing := uint(9999)
	_, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &missing,
		MatchType:  models.MatchSingles,
		TeamOneIDs: []uint{1},
		TeamTwoIDs: []uint{2},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateMatchTeamSize(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	// Two players per side is a doubles roster, not singles.
	_, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchSingles,
		TeamOneIDs: ids[:2],
		TeamTwoIDs: ids[2:4],
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchDoubles,
		TeamOneIDs: ids[:1],
		TeamTwoIDs: ids[1:2],
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateMatchRepeatedPlayer(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	_, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchSingles,
		TeamOneIDs: []uint{ids[0]},
		TeamTwoIDs: []uint{ids[0]},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateMatchNonMember(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	outsider := createTestUser(t, db, "outsider@example.com", "Outsider")

	_, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchSingles,
		TeamOneIDs: []uint{ids[0]},
		TeamTwoIDs: []uint{outsider.ID},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateDoublesMatchWithScore(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	match, err := svc.CreateMatch(CreateMatchInput{
		GroupID:      &groupID,
		MatchType:    models.MatchDoubles,
		TeamOneIDs:   ids[:2],
		TeamTwoIDs:   ids[2:4],
		TeamOneScore: intPtr(11),
		TeamTwoScore: intPtr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, "11-9", match.Score)
	assert.Equal(t, models.MatchDoubles, match.MatchType)
	require.Len(t, match.TeamOne, 2)
	require.Len(t, match.TeamTwo, 2)
	assert.WithinDuration(t, time.Now(), match.MatchDate, time.Minute)
}

func TestCreateMatchWithoutScore(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	// Only one score supplied: recorded without a score, not half of one.
	match, err := svc.CreateMatch(CreateMatchInput{
		GroupID:      &groupID,
		MatchType:    models.MatchSingles,
		TeamOneIDs:   []uint{ids[0]},
		TeamTwoIDs:   []uint{ids[1]},
		TeamOneScore: intPtr(11),
	})
	require.NoError(t, err)
	assert.Empty(t, match.Score)
}

func TestUpdateScore(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	match, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchSingles,
		TeamOneIDs: []uint{ids[0]},
		TeamTwoIDs: []uint{ids[1]},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateScore(match.ID, "11-7")
	require.NoError(t, err)
	assert.Equal(t, "11-7", updated.Score)

	// Overwrite is unconditional.
	updated, err = svc.UpdateScore(match.ID, "12-10")
	require.NoError(t, err)
	assert.Equal(t, "12-10", updated.Score)

	_, err = svc.UpdateScore(9999, "11-0")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListMatchesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupService(db)
	svc := NewMatchService(db)
	groupID, ids := matchFixture(t, groups)

	first, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchSingles,
		TeamOneIDs: []uint{ids[0]},
		TeamTwoIDs: []uint{ids[1]},
	})
	require.NoError(t, err)

	// Backdate the first match so ordering is deterministic.
	require.NoError(t, db.Model(&models.Match{}).
		Where("id = ?", first.ID).
		Update("match_date", time.Now().Add(-time.Hour)).Error)

	second, err := svc.CreateMatch(CreateMatchInput{
		GroupID:    &groupID,
		MatchType:  models.MatchDoubles,
		TeamOneIDs: ids[:2],
		TeamTwoIDs: ids[2:4],
	})
	require.NoError(t, err)

	matches, err := svc.ListMatches()
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, second.ID, matches[0].ID)
	assert.Equal(t, first.ID, matches[1].ID)
	require.Len(t, matches[0].TeamOne, 2)
}
