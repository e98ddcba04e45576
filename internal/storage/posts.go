package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/board-runner/internal/board"
)

// SavePost stores a board post and returns its row ID.
func (s *Store) SavePost(p board.Post) (int64, error) {
	var imageURL, imageName, videoURL sql.NullString
	var imageW, imageH int
	if p.Image != nil {
		imageURL = sql.NullString{String: p.Image.URL, Valid: true}
		imageName = sql.NullString{String: p.Image.Filename, Valid: true}
		imageW, imageH = p.Image.Width, p.Image.Height
	}
	if p.Video != nil {
		videoURL = sql.NullString{String: p.Video.URL, Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO posts
		 (number, text, thread_name, is_op, image_url, image_name, image_width, image_height, video_url, created_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Number, p.Text, p.ThreadName, p.IsOP,
		imageURL, imageName, imageW, imageH, videoURL,
		p.Timestamp.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LoadPosts returns every stored post in board order.
func (s *Store) LoadPosts() ([]board.Post, error) {
	rows, err := s.db.Query(
		`SELECT id, number, text, thread_name, is_op, image_url, image_name,
		        image_width, image_height, video_url, created_unix
		 FROM posts
		 ORDER BY number ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query posts: %w", err)
	}
	defer rows.Close()

	var posts []board.Post
	for rows.Next() {
		var p board.Post
		var imageURL, imageName, videoURL sql.NullString
		var imageW, imageH int
		var created int64
		if err := rows.Scan(
			&p.ID, &p.Number, &p.Text, &p.ThreadName, &p.IsOP,
			&imageURL, &imageName, &imageW, &imageH, &videoURL, &created,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan post: %w", err)
		}

		if imageURL.Valid {
			p.Image = &board.Attachment{
				URL:      imageURL.String,
				Filename: imageName.String,
				Width:    imageW,
				Height:   imageH,
			}
		}
		if videoURL.Valid {
			p.Video = &board.Attachment{URL: videoURL.String}
		}
		p.Timestamp = time.Unix(0, created)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return posts, nil
}

// ClearPosts deletes every stored post.
func (s *Store) ClearPosts() error {
	if _, err := s.db.Exec("DELETE FROM posts"); err != nil {
		return fmt.Errorf("storage: cannot clear posts: %w", err)
	}
	return nil
}

var _ board.Persister = (*Store)(nil)
