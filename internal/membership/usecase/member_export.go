package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/storage"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
	"github.com/samber/lo"
)

const memberExportPageSize int32 = 1_000

type (
	MemberExportInput struct {
		Search    string
		Statuses  []string
		DateFrom  time.Time
		DateTo    time.Time
		SortBy    string
		SortOrder string
	}

	MemberExportOutput struct {
		FileURL string
		Total   int64
	}
)

// MemberExport pages through the filtered directory, renders it as CSV,
// and uploads the file to object storage.
func (s *Usecase) MemberExport(ctx context.Context, in MemberExportInput) (*MemberExportOutput, error) {
	ctx, span := s.startSpan(ctx, "MemberExport")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	filterData := entity.MemberListFilterData{
		OrderBy:        in.SortBy,
		OrderDirection: in.SortOrder,
		Search:         in.Search,
		Statuses:       entity.ToInt16Slice(entity.ParseSafeMemberStatuses(in.Statuses)),
		DateFrom:       in.DateFrom,
		DateTo:         in.DateTo,
		Size:           memberExportPageSize,
		Page:           0,
	}
	if in.Search != "" {
		filterData.IsFilterBySearch = true
	}
	if len(filterData.Statuses) > 0 {
		filterData.IsFilterByStatus = true
	}

	var (
		members []entity.Member
		page    int32 = 1
		total   int64
	)

	for {
		filterData.Page = (page - 1) * memberExportPageSize

		pageMembers, count, err := s.repoDB.GetMemberList(ctx, filterData)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo export members", "error", err)
			return nil, goerror.NewServer(err)
		}

		if page == 1 {
			total = count
			if total == 0 {
				break
			}
			members = make([]entity.Member, 0, min(total, int64(memberExportPageSize)))
		}

		members = append(members, pageMembers...)

		if int64(len(members)) >= total || len(pageMembers) == 0 {
			break
		}

		page++
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "full_name", "email", "phone", "birth_date", "status", "enroll_method", "easy_login_enabled"})

	rows := lo.Map(members, func(m entity.Member, _ int) []string {
		birthDate := ""
		if m.BirthDate != nil {
			birthDate = m.BirthDate.Format(time.DateOnly)
		}
		return []string{
			strconv.FormatInt(m.ID, 10),
			m.FullName,
			m.Email,
			m.Phone,
			birthDate,
			m.Status.String(),
			m.EnrollMethod.String(),
			strconv.FormatBool(m.EasyLoginEnabled),
		}
	})
	_ = w.WriteAll(rows)
	if err := w.Error(); err != nil {
		slog.ErrorContext(ctx, "failed to render member export csv", "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.membership.export_bucket"))
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.membership.export_base_url"))
	key := fmt.Sprintf("exports/members-%s-%s.csv", s.clock.Now().Format("20060102-150405"), s.uuid.Generate())

	_, err = s.storage.PutObject(ctx, bucket, key, buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
		Metadata:    map[string]string{"exported_by": strconv.FormatInt(clm.UserID, 10)},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload member export", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MemberExportOutput{
		FileURL: baseURL + "/" + key,
		Total:   total,
	}, nil
}
