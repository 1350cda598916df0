package sqlite

import (
	"context"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

type cvFilesRepo struct {
	q dbtx
}

func (r *cvFilesRepo) CreateCVFile(ctx context.Context, f domain.CVFile) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO cv_files (client_id, file_path, mime_type, size_bytes, uploaded_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ClientID, f.FilePath, f.MimeType, f.SizeBytes, now())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *cvFilesRepo) GetLatestCVFileForClient(ctx context.Context, clientID int64) (domain.CVFile, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, client_id, file_path, mime_type, size_bytes, uploaded_at
		FROM cv_files WHERE client_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		clientID)

	var f domain.CVFile
	err := row.Scan(&f.ID, &f.ClientID, &f.FilePath, &f.MimeType, &f.SizeBytes, &f.UploadedAt)
	if err != nil {
		return domain.CVFile{}, mapNotFound(err)
	}
	return f, nil
}
