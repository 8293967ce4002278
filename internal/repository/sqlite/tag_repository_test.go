package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
	"github.com/vocabdeck/vocabdeck/internal/repository/sqlite"
	"github.com/vocabdeck/vocabdeck/internal/testutil"
)

type TagRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.TagRepository
}

func (s *TagRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewTagRepository(s.db)
}

func (s *TagRepositorySuite) createUser(username string) int64 {
	res, err := s.db.ExecContext(context.Background(),
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, username+"@example.com", "hash")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *TagRepositorySuite) TestInsertGetUpdate() {
	ctx := context.Background()
	userID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, models.Tag{UserID: userID, Name: "verbs", Color: "#ff0000"})
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("verbs", got.Name)
	s.Assert().Equal("#ff0000", got.Color)

	got.Name = "nouns"
	got.Color = "#00ff00"
	s.Require().NoError(s.repo.Update(ctx, *got))

	got, err = s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("nouns", got.Name)
	s.Assert().Equal("#00ff00", got.Color)
}

func (s *TagRepositorySuite) TestUniquePerUser() {
	ctx := context.Background()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	_, err := s.repo.Insert(ctx, models.Tag{UserID: alice, Name: "verbs"})
	s.Require().NoError(err)

	// Same name for the same user violates the unique constraint.
	_, err = s.repo.Insert(ctx, models.Tag{UserID: alice, Name: "verbs"})
	s.Require().Error(err)

	// Another user may reuse the name.
	_, err = s.repo.Insert(ctx, models.Tag{UserID: bob, Name: "verbs"})
	s.Require().NoError(err)
}

func (s *TagRepositorySuite) TestFindByNameAndUser() {
	ctx := context.Background()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	id, err := s.repo.Insert(ctx, models.Tag{UserID: alice, Name: "verbs"})
	s.Require().NoError(err)

	got, err := s.repo.FindByNameAndUser(ctx, "verbs", alice)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(id, got.ID)

	got, err = s.repo.FindByNameAndUser(ctx, "verbs", bob)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *TagRepositorySuite) TestListByUserSorted() {
	ctx := context.Background()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	for _, name := range []string{"zebra", "alpha", "mid"} {
		_, err := s.repo.Insert(ctx, models.Tag{UserID: alice, Name: name})
		s.Require().NoError(err)
	}
	_, err := s.repo.Insert(ctx, models.Tag{UserID: bob, Name: "other"})
	s.Require().NoError(err)

	tags, err := s.repo.ListByUser(ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(tags, 3)
	s.Assert().Equal("alpha", tags[0].Name)
	s.Assert().Equal("mid", tags[1].Name)
	s.Assert().Equal("zebra", tags[2].Name)
}

func (s *TagRepositorySuite) TestDeleteRemovesAssignments() {
	ctx := context.Background()
	alice := s.createUser("alice")

	tagID, err := s.repo.Insert(ctx, models.Tag{UserID: alice, Name: "verbs"})
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `
INSERT INTO cards (user_id, front, back, next_review) VALUES (?, 'f', 'b', '2025-06-15 00:00:00')`, alice)
	s.Require().NoError(err)
	var cardID int64
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT id FROM cards WHERE user_id = ?`, alice).Scan(&cardID))
	_, err = s.db.ExecContext(ctx, `INSERT INTO card_tags (card_id, tag_id) VALUES (?, ?)`, cardID, tagID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, tagID))

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM card_tags WHERE tag_id = ?`, tagID).Scan(&n))
	s.Assert().Equal(0, n)

	// The card survives the tag's deletion.
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM cards WHERE id = ?`, cardID).Scan(&n))
	s.Assert().Equal(1, n)
}

func TestTagRepositorySuite(t *testing.T) {
	suite.Run(t, new(TagRepositorySuite))
}
