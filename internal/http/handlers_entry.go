package http

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"jizhang/internal/core"
	"jizhang/internal/form"
	"jizhang/internal/log"
)

// entryRow is the display shape of one entry.
type entryRow struct {
	ID       string
	Desc     string
	Amount   string
	Category string
}

// entriesData feeds the entries partial: the filtered rows plus everything
// the filter controls need. HasEntries reflects the unfiltered collection,
// so the table and the filter disappear together only when the store is
// actually empty.
type entriesData struct {
	Rows       []entryRow
	Categories []core.Category
	Filter     core.Category
	HasEntries bool
	Count      int
	Total      string
}

// indexData feeds the full page.
type indexData struct {
	Categories []core.Category
	Entries    entriesData
}

// entriesView lists the store and applies the transient category filter.
// The projection is recomputed on every call; nothing is cached.
func (s *Server) entriesView(ctx context.Context, filter core.Category) (entriesData, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entries, err := s.backend.List(cctx)
	if err != nil {
		return entriesData{}, err
	}

	filtered := core.FilterByCategory(entries, filter)
	data := entriesData{
		Categories: core.Categories(),
		Filter:     filter,
		HasEntries: len(entries) > 0,
		Count:      len(filtered),
	}
	var totalCents int64
	for _, e := range filtered {
		totalCents += e.Amount.Cents
		data.Rows = append(data.Rows, entryRow{
			ID:       e.ID,
			Desc:     e.Description,
			Amount:   formatYuan(e.Amount.Cents),
			Category: string(e.Category),
		})
	}
	data.Total = formatYuan(totalCents)
	return data, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	entries, err := s.entriesView(r.Context(), "")
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry list error", log.FieldError, err, log.FieldOperation, log.OpList)
	}

	data := indexData{
		Categories: core.Categories(),
		Entries:    entries,
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, log.FieldOperation, log.OpRender)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// fieldMessages maps validation codes to user-facing text per field.
var fieldMessages = map[string]map[core.FieldErrorCode]string{
	core.FieldDescription: {
		core.RequiredField: "请填写描述",
		core.TooShort:      "描述至少 2 个字符",
		core.TooLong:       "描述最多 50 个字符",
	},
	core.FieldAmount: {
		core.RequiredField: "请填写金额",
		core.OutOfRange:    "金额须大于 0 且不超过 10000",
	},
	core.FieldCategory: {
		core.RequiredField: "请选择类别",
	},
}

// validationErrorBody renders per-field messages in a stable order. The
// markup stays in the form's result slot, so the entered values remain
// visible until the user corrects and resubmits.
func validationErrorBody(errs core.FieldErrors) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(`<div class="error"><ul>`)
	for _, field := range fields {
		msg := fieldMessages[field][errs[field]]
		if msg == "" {
			msg = string(errs[field])
		}
		b.WriteString(`<li data-field="` + field + `">` + template.HTMLEscapeString(msg) + `</li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		resp.Write(w)
		return
	}

	collector := form.NewCollector()
	entry, errs := collector.Submit(form.Candidate{
		Description: sanitizeInput(r.Form.Get("description")),
		Amount:      strings.TrimSpace(r.Form.Get("amount")),
		Category:    sanitizeInput(r.Form.Get("category")),
	})
	if errs != nil {
		slog.InfoContext(r.Context(), "Entry rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldError, errs.Error())
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			BodyHTML(validationErrorBody(errs)).
			Write(w)
		return
	}

	id, err := s.backend.Append(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save entry",
			log.FieldError, err,
			log.FieldDescription, entry.Description,
			log.FieldAmountCents, entry.Amount.Cents,
			log.FieldCategory, entry.Category,
			log.FieldOperation, log.OpCreate)
		InternalServerError("保存失败").Write(w)
		return
	}

	atomic.AddInt64(&s.appMetrics.totalEntries, 1)

	slog.InfoContext(r.Context(), "Entry created",
		log.FieldEntryID, id,
		log.FieldDescription, entry.Description,
		log.FieldAmountCents, entry.Amount.Cents,
		log.FieldCategory, entry.Category,
		log.FieldOperation, log.OpCreate)

	NewHTMXResponse().
		TriggerEntryCreated(id).
		TriggerFormReset().
		TriggerSuccessNotification("已记录：" + entry.Description + " " + formatYuan(entry.Amount.Cents)).
		Write(w)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Parse delete body error",
			log.FieldError, err, log.FieldMethod, r.Method)
		BadRequestError("请求格式无效").Write(w)
		return
	}

	id := parser.Get("id")
	if id == "" {
		id = sanitizeInput(r.URL.Query().Get("id"))
	}
	if id == "" {
		BadRequestError("缺少条目 ID").Write(w)
		return
	}

	// Removing an unknown id is a no-op by design: the store ends up in
	// the requested state either way.
	if err := s.backend.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete entry",
			log.FieldError, err,
			log.FieldEntryID, id,
			log.FieldOperation, log.OpDelete)
		InternalServerError("删除失败").Write(w)
		return
	}

	atomic.AddInt64(&s.appMetrics.totalEntries, -1)

	slog.InfoContext(r.Context(), "Entry deleted",
		log.FieldEntryID, id,
		log.FieldOperation, log.OpDelete)

	NewHTMXResponse().
		TriggerEntryDeleted(id).
		TriggerSuccessNotification("已删除").
		Write(w)
}

// handleEntries renders the entries partial with the transient category
// filter from the query string.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := core.Category(sanitizeInput(r.URL.Query().Get("category")))
	if filter != "" && !filter.Valid() {
		// A label outside the closed set matches nothing; the projection
		// comes back empty rather than silently unfiltered.
		slog.WarnContext(r.Context(), "Filter category outside the known set", log.FieldCategory, filter)
	}

	data, err := s.entriesView(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry list error",
			log.FieldError, err, log.FieldOperation, log.OpList)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">加载失败</div></section>`))
		return
	}
	if s.templates == nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">渲染失败</div></section>`))
		return
	}

	// Render to a buffer first so a template failure can still become a
	// clean error status.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "entries", data); err != nil {
		slog.ErrorContext(r.Context(), "Entries template execution failed",
			log.FieldError, err, log.FieldOperation, log.OpRender)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<section id="entries" class="entries"><div class="placeholder">渲染失败</div></section>`))
		return
	}
	_, _ = w.Write(buf.Bytes())
}
