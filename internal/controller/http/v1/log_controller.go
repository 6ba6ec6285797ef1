package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogLens/internal/controller/common/logging"
	"github.com/Egor213/LogLens/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	queryGetLog    = "get_log"
	queryDeleteLog = "delete_log"
	queryFileSize  = "filesize"
	queryIgnore    = "ignore"

	msgUnknownRequest = "Unknown request. Use one of the get_log, delete_log or filesize queryvars."
	msgInternal       = "Internal error, check the server log."
)

type LogController struct {
	logService service.Log
}

func NewLogController(ls service.Log) *LogController {
	return &LogController{
		logService: ls,
	}
}

// Dispatch serves the query-parameter API: ?get_log, ?delete_log, ?filesize.
// delete_log and filesize answer with the file issue, if any, instead of
// running; get_log reports issues through its own error path.
func (c *LogController) Dispatch(ctx echo.Context) error {
	q := ctx.QueryParams()
	switch {
	case q.Has(queryGetLog):
		return c.GetLog(ctx)
	case q.Has(queryDeleteLog):
		if issue := c.issues(ctx); issue != "" {
			return c.answerIssue(ctx, "delete_log", issue)
		}
		return c.DeleteLog(ctx)
	case q.Has(queryFileSize):
		if issue := c.issues(ctx); issue != "" {
			return c.answerIssue(ctx, "filesize", issue)
		}
		return c.FileSize(ctx)
	}
	return ctx.JSON(http.StatusNotFound, msgUnknownRequest)
}

func (c *LogController) issues(ctx echo.Context) string {
	return c.logService.Issues(ctx.Request().Context(), ctx.QueryParams().Has(queryIgnore))
}

func (c *LogController) answerIssue(ctx echo.Context, op, issue string) error {
	logginghelper.LogIssue(op, issue)
	return ctx.JSON(http.StatusOK, issue)
}

func (c *LogController) GetLog(ctx echo.Context) error {
	ignore := ctx.QueryParams().Has(queryIgnore)

	records, err := c.logService.GetLog(ctx.Request().Context(), ignore)
	if err != nil {
		return c.fail(ctx, "get_log", err)
	}
	return ctx.JSON(http.StatusOK, records)
}

func (c *LogController) DeleteLog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.logService.Truncate(ctx.Request().Context()))
}

func (c *LogController) FileSize(ctx echo.Context) error {
	size, err := c.logService.FileSize(ctx.Request().Context())
	if err != nil {
		return c.fail(ctx, "filesize", err)
	}
	return ctx.JSON(http.StatusOK, size)
}

func (c *LogController) fail(ctx echo.Context, op string, err error) error {
	var issue *service.IssueError
	if errors.As(err, &issue) {
		logginghelper.LogIssue(op, issue.Message)
		return ctx.JSON(issueStatus(issue.Kind), issue.Message)
	}
	logginghelper.LogError(op, err)
	return ctx.JSON(http.StatusInternalServerError, msgInternal)
}

func issueStatus(kind service.IssueKind) int {
	switch kind {
	case service.IssueNotFound:
		return http.StatusNotFound
	case service.IssueTooLarge:
		return http.StatusRequestEntityTooLarge
	case service.IssueEmpty:
		return http.StatusOK
	case service.IssueUndecodable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
