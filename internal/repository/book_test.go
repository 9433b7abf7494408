package repository

import (
	"testing"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter(t *testing.T) {
	t.Parallel()

	t.Run("empty search matches everything", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, bson.M{}, searchFilter(""))
	})

	t.Run("search spans title, author and genre", func(t *testing.T) {
		t.Parallel()
		filter := searchFilter("dune")
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 3)

		re := caseInsensitiveSubstring("dune")
		require.Contains(t, or, bson.M{"title": re})
		require.Contains(t, or, bson.M{"author": re})
		require.Contains(t, or, bson.M{"genre": re})
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		t.Parallel()
		re := caseInsensitiveSubstring("c++ (2nd ed.)")
		require.Equal(t, `c\+\+ \(2nd ed\.\)`, re.Pattern)
		require.Equal(t, "i", re.Options)
	})
}

func TestPageOffset(t *testing.T) {
	t.Parallel()
	require.EqualValues(t, 0, pageOffset(1, 10))
	require.EqualValues(t, 10, pageOffset(2, 10))
	require.EqualValues(t, 45, pageOffset(10, 5))
}

func TestListBooksPipeline(t *testing.T) {
	t.Parallel()

	t.Run("anonymous listing defaults read to false", func(t *testing.T) {
		t.Parallel()
		pipeline := listBooksPipeline(bson.M{}, nil, 1, 10)
		require.Len(t, pipeline, 5)

		last := pipeline[4]
		require.Equal(t, "$addFields", last[0].Key)
		require.Equal(t, bson.D{{Key: "read", Value: false}}, last[0].Value)
	})

	t.Run("customer listing joins that customer's statuses only", func(t *testing.T) {
		t.Parallel()
		cid := primitive.NewObjectID()
		pipeline := listBooksPipeline(bson.M{}, &cid, 2, 5)
		require.Len(t, pipeline, 7)

		require.Equal(t, "$match", pipeline[0][0].Key)
		require.Equal(t, "$sort", pipeline[1][0].Key)
		require.Equal(t, "$skip", pipeline[2][0].Key)
		require.EqualValues(t, 5, pipeline[2][0].Value)
		require.Equal(t, "$limit", pipeline[3][0].Key)
		require.EqualValues(t, 5, pipeline[3][0].Value)

		lookup := pipeline[4]
		require.Equal(t, "$lookup", lookup[0].Key)
		spec, ok := lookup[0].Value.(bson.D)
		require.True(t, ok)
		require.Equal(t, bson.D{
			{Key: "from", Value: statusesCollection},
			{Key: "let", Value: bson.D{{Key: "bookId", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$bookId", "$$bookId"}}},
					bson.D{{Key: "$eq", Value: bson.A{"$customerId", cid}}},
				}}}}}}},
			}},
			{Key: "as", Value: "statuses"},
		}, spec)

		// joined statuses never leak into the response
		require.Equal(t, "$project", pipeline[6][0].Key)
		require.Equal(t, bson.D{{Key: "statuses", Value: 0}}, pipeline[6][0].Value)
	})
}

func TestToggleUpdate(t *testing.T) {
	t.Parallel()
	cid := primitive.NewObjectID()
	bid := primitive.NewObjectID()

	update := toggleUpdate(cid, bid)
	require.Len(t, update, 1)

	set, ok := update[0].(bson.M)["$set"].(bson.M)
	require.True(t, ok)
	require.Equal(t, cid, set["customerId"])
	require.Equal(t, bid, set["bookId"])

	// flip: read becomes unread, anything else (including absent) becomes read
	require.Equal(t, bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$status", model.StateRead}},
		model.StateUnread,
		model.StateRead,
	}}, set["status"])

	// createdAt survives flips, updatedAt always moves
	require.Equal(t, bson.M{"$ifNull": bson.A{"$createdAt", "$$NOW"}}, set["createdAt"])
	require.Equal(t, "$$NOW", set["updatedAt"])
}

func TestStatusBooksPipeline(t *testing.T) {
	t.Parallel()
	cid := primitive.NewObjectID()
	filter := bson.M{"customerId": cid, "status": model.StateRead}

	pipeline := statusBooksPipeline(filter, 3, 20)
	require.Len(t, pipeline, 7)

	require.Equal(t, "$match", pipeline[0][0].Key)
	require.Equal(t, filter, pipeline[0][0].Value)
	require.Equal(t, "$skip", pipeline[2][0].Key)
	require.EqualValues(t, 40, pipeline[2][0].Value)

	lookup := pipeline[4]
	require.Equal(t, "$lookup", lookup[0].Key)
	require.Equal(t, bson.D{
		{Key: "from", Value: booksCollection},
		{Key: "localField", Value: "bookId"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "book"},
	}, lookup[0].Value)

	require.Equal(t, "$unwind", pipeline[5][0].Key)
	require.Equal(t, "$replaceRoot", pipeline[6][0].Key)
}
