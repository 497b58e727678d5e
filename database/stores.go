package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sparked/models"
)

// FindUserByID returns (nil, nil) when no user exists with the id.
func (db *DB) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := db.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindUserByEmail returns (nil, nil) when no user exists with the email.
func (db *DB) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (db *DB) InsertUser(ctx context.Context, user *models.User) error {
	if _, err := db.Users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateUserFields applies a field-level $set and returns the updated
// document. Returns (nil, nil) when the user does not exist.
func (db *DB) UpdateUserFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := db.Users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// FindCandidates lists users outside the exclusion set, optionally
// restricted to one genre. genre "" or "all" means no genre filter.
func (db *DB) FindCandidates(ctx context.Context, exclude []primitive.ObjectID, genre string, limit int64) ([]models.User, error) {
	filter := bson.M{"_id": bson.M{"$nin": exclude}}
	if genre != "" && genre != models.PreferenceAll {
		filter["genre"] = genre
	}

	cursor, err := db.Users.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return users, nil
}

// FindUsersByIDs fetches the users whose ids appear in ids; missing ids
// are silently skipped.
func (db *DB) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := db.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UpsertLike records the edge from -> to. Re-liking leaves the existing
// edge untouched, including its original createdAt.
func (db *DB) UpsertLike(ctx context.Context, from, to primitive.ObjectID, at int64) error {
	filter := bson.M{"userId": from, "targetUserId": to}
	update := bson.M{"$setOnInsert": bson.M{
		"userId":       from,
		"targetUserId": to,
		"createdAt":    at,
	}}

	_, err := db.Likes.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("upsert like: %w", err)
	}
	return nil
}

func (db *DB) HasLike(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	count, err := db.Likes.CountDocuments(ctx, bson.M{"userId": from, "targetUserId": to})
	if err != nil {
		return false, fmt.Errorf("count likes: %w", err)
	}
	return count > 0, nil
}

// LikedIDs returns every user the given user has liked.
func (db *DB) LikedIDs(ctx context.Context, from primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := db.Likes.Find(ctx, bson.M{"userId": from})
	if err != nil {
		return nil, fmt.Errorf("find likes: %w", err)
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.TargetUserID)
	}
	return ids, nil
}

// CreateMatchIfAbsent inserts the match for the canonical pair unless
// one already exists. It reports whether this call created the record;
// a duplicate-key rejection from a concurrent insert counts as "already
// exists".
func (db *DB) CreateMatchIfAbsent(ctx context.Context, a, b primitive.ObjectID, at int64) (*models.Match, bool, error) {
	pairKey := models.PairKey(a, b)
	filter := bson.M{"pairKey": pairKey}
	update := bson.M{"$setOnInsert": bson.M{
		"pairKey":   pairKey,
		"userA":     a,
		"userB":     b,
		"createdAt": at,
	}}

	res, err := db.Matches.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("upsert match: %w", err)
	}
	if res.UpsertedCount == 0 {
		return nil, false, nil
	}

	match := &models.Match{
		PairKey:   pairKey,
		UserA:     a,
		UserB:     b,
		CreatedAt: at,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		match.ID = id
	}
	return match, true, nil
}

// MatchesForUser returns every match where the user occupies either
// slot, newest first.
func (db *DB) MatchesForUser(ctx context.Context, user primitive.ObjectID) ([]models.Match, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"userA": user},
		bson.M{"userB": user},
	}}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Matches.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return matches, nil
}
