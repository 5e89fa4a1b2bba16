package sqlw_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/sqlw"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSqlw(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "sqlw Suite")
}

var _ = Describe("sqlw", func() {
	var db sqlw.Interface

	BeforeEach(func() {
		var err error
		db, err = sqlw.Open("sqlite3", ":memory:")
		Expect(err).ToNot(HaveOccurred())
		db.DBX().SetMaxOpenConns(1)
		_, err = db.Exec("CREATE TABLE t (v TEXT)")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.DBX().Close()).To(Succeed())
	})

	It("logs statements to the context logger, or the fallback", func() {
		fallback, fallbackHook := logctx.NewNullLogger()
		ctx, ctxHook := logctx.WithNullLogger(nil)
		ldb := sqlw.WithLogging(db, fallback)

		_, err := ldb.ExecContext(ctx, "INSERT INTO t (v) VALUES (?)", "a")
		Expect(err).ToNot(HaveOccurred())
		Expect(ctxHook.Records()).To(HaveLen(1))
		Expect(ctxHook.LastRecord().Record.Message).To(Equal("sql_exec"))

		rows, err := ldb.Queryx("SELECT v FROM t")
		Expect(err).ToNot(HaveOccurred())
		Expect(rows.Close()).To(Succeed())
		Expect(fallbackHook.Records()).To(HaveLen(1))
		Expect(fallbackHook.LastRecord().Record.Message).To(Equal("sql_queryx"))
		Expect(ldb.DBX()).To(BeIdenticalTo(db.DBX()))
	})

	It("can intercept statements", func() {
		boom := errors.New("boom")
		var seen []string
		idb := sqlw.WithInterceptor(db, func(_ context.Context, q string, _ []interface{}) error {
			seen = append(seen, q)
			if q == "fail" {
				return boom
			}
			return nil
		})
		_, err := idb.QueryxContext(context.Background(), "fail")
		Expect(err).To(BeIdenticalTo(boom))
		_, err = idb.Exec("INSERT INTO t (v) VALUES ('b')")
		Expect(err).ToNot(HaveOccurred())
		Expect(seen).To(Equal([]string{"fail", "INSERT INTO t (v) VALUES ('b')"}))
		Expect(func() { idb.QueryRowx("fail") }).To(PanicWith(boom))
	})
})
