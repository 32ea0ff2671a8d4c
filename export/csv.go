package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flyerboard/domain"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fundwit/go-commons/types"
)

var ErrNoProjects = errors.New("no projects to export")

const bom = "\uFEFF"

var Header = []string{
	"id", "eventName", "eventDate", "eventTime", "eventLocation", "printCount",
	"deliveryHopeDate", "numberOfRecruits", "notes", "status", "createdAt",
	"isUrgent", "flyerNotNeeded", "files", "comments",
}

// FileName is the suggested download name.
const FileName = "projects.csv"

// WriteCSV writes one row per project behind a UTF-8 BOM. Arrays are JSON
// encoded and createdAt is an RFC 3339 UTC timestamp.
func WriteCSV(w io.Writer, projects []domain.Project) error {
	if len(projects) == 0 {
		return ErrNoProjects
	}
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range projects {
		record, err := toRecord(p)
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRecord(p domain.Project) ([]string, error) {
	files, err := json.Marshal(nonNilFiles(p.Files))
	if err != nil {
		return nil, err
	}
	comments, err := json.Marshal(nonNilComments(p.Comments))
	if err != nil {
		return nil, err
	}
	return []string{
		p.ID.String(),
		p.EventName,
		p.EventDate,
		p.EventTime,
		p.EventLocation,
		optionalInt(p.PrintCount),
		p.DeliveryHopeDate,
		optionalInt(p.NumberOfRecruits),
		p.Notes,
		string(p.Status),
		createdTimestamp(p.CreatedAt),
		strconv.FormatBool(p.IsUrgent),
		strconv.FormatBool(p.FlyerNotNeeded),
		string(files),
		string(comments),
	}, nil
}

// ReadCSV parses what WriteCSV produced.
func ReadCSV(r io.Reader) ([]domain.Project, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, []byte(bom)) {
		if _, err := br.Discard(len(bom)); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = len(Header)
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if strings.Join(header, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("unexpected csv header: %v", header)
	}

	result := []domain.Project{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := fromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result = append(result, p)
	}
	return result, nil
}

func fromRecord(record []string) (domain.Project, error) {
	p := domain.Project{
		EventName:        record[1],
		EventDate:        record[2],
		EventTime:        record[3],
		EventLocation:    record[4],
		DeliveryHopeDate: record[6],
		Notes:            record[8],
		Status:           domain.ProjectStatus(record[9]),
	}
	var err error
	if p.ID, err = types.ParseID(record[0]); err != nil {
		return p, err
	}
	if p.PrintCount, err = parseOptionalInt(record[5]); err != nil {
		return p, err
	}
	if p.NumberOfRecruits, err = parseOptionalInt(record[7]); err != nil {
		return p, err
	}
	if record[10] != "" {
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, record[10]); err != nil {
			return p, err
		}
	}
	if p.IsUrgent, err = strconv.ParseBool(record[11]); err != nil {
		return p, err
	}
	if p.FlyerNotNeeded, err = strconv.ParseBool(record[12]); err != nil {
		return p, err
	}
	if err = p.Files.Scan(record[13]); err != nil {
		return p, err
	}
	if err = p.Comments.Scan(record[14]); err != nil {
		return p, err
	}
	return p, nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func createdTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nonNilFiles(f domain.Files) domain.Files {
	if f == nil {
		return domain.Files{}
	}
	return f
}

func nonNilComments(c domain.Comments) domain.Comments {
	if c == nil {
		return domain.Comments{}
	}
	return c
}
