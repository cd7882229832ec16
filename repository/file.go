package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// fieldsPerRecord id, arrivalTime, serviceTime, priority
const fieldsPerRecord = 4

type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (f *FileRepository) Path() string {
	return f.path
}

func (f *FileRepository) Load(ctx context.Context) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputFileMissing, f.path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputFileMissing, f.path)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseRecords(file)
}

// ParseRecords 每行一个作业，四个以逗号分隔的整数，字段中的空白会被去掉，空行被跳过
func ParseRecords(r io.Reader) ([]domain.Job, error) {
	content, err := blankWhitespaceLines(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = fieldsPerRecord
	reader.TrimLeadingSpace = true

	var jobs []domain.Job
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, perr.Line, perr.Err)
			}
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		job, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// blankWhitespaceLines 把只含空白的行置空，csv会跳过空行且保留原有行号
func blankWhitespaceLines(r io.Reader) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func parseRecord(record []string) (domain.Job, error) {
	var values [fieldsPerRecord]int
	for i, field := range record {
		v, err := strconv.Atoi(strings.Join(strings.Fields(field), ""))
		if err != nil {
			return domain.Job{}, err
		}
		values[i] = v
	}

	return domain.Job{
		ID:          values[0],
		ArrivalTime: values[1],
		ServiceTime: values[2],
		Priority:    _const.Priority(values[3]),
	}, nil
}
