package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
)

// boardDoc is the stored shape; _id stays internal and never reaches the model.
type boardDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BoardID   string             `bson:"boardId"`
	Name      string             `bson:"name"`
	Columns   model.Columns      `bson:"columns"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toDoc(b *model.Board) boardDoc {
	cp := b.Clone()
	return boardDoc{
		BoardID:   cp.BoardID,
		Name:      cp.Name,
		Columns:   cp.Columns,
		CreatedAt: cp.CreatedAt,
		UpdatedAt: cp.UpdatedAt,
	}
}

func (d boardDoc) toModel() *model.Board {
	b := model.Board{
		BoardID:   d.BoardID,
		Name:      d.Name,
		Columns:   d.Columns,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	return b.Clone()
}

// BoardRepo implements BoardRepository on a MongoDB collection.
type BoardRepo struct{ coll *mongo.Collection }

// NewBoardRepo constructs a repository over coll.
func NewBoardRepo(coll *mongo.Collection) *BoardRepo { return &BoardRepo{coll: coll} }

// EnsureIndexes creates the unique boardId index.
func (r *BoardRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("boardId_unique"),
	})
	if err != nil {
		return fmt.Errorf("create boardId index: %w", err)
	}
	return nil
}

// Create inserts a new board document.
func (r *BoardRepo) Create(ctx context.Context, b *model.Board) error {
	_, err := r.coll.InsertOne(ctx, toDoc(b))
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Get finds a board document by boardId.
func (r *BoardRepo) Get(ctx context.Context, boardID string) (*model.Board, error) {
	var d boardDoc
	err := r.coll.FindOne(ctx, bson.M{"boardId": boardID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return d.toModel(), nil
}

// Update sets name, columns and updatedAt on the stored document.
func (r *BoardRepo) Update(ctx context.Context, b *model.Board) error {
	d := toDoc(b)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"boardId": b.BoardID},
		bson.M{"$set": bson.M{
			"name":      d.Name,
			"columns":   d.Columns,
			"updatedAt": d.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the board document and the cards nested in it.
func (r *BoardRepo) Delete(ctx context.Context, boardID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
