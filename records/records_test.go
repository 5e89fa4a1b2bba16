package records_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/records"
	"github.com/lithictech/go-assay/sqlw"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRecords(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "records Suite")
}

var _ = Describe("records", func() {
	var db sqlw.Interface

	BeforeEach(func() {
		var err error
		db, err = sqlw.Open("sqlite3", ":memory:")
		Expect(err).ToNot(HaveOccurred())
		db.DBX().SetMaxOpenConns(1)
		_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)`)
		Expect(err).ToNot(HaveOccurred())
		_, err = db.Exec(`INSERT INTO users (id, email) VALUES (1, 'a@x.com'), (2, 'b@x.com')`)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.DBX().Close()).To(Succeed())
	})

	Describe("RecordExists", func() {
		It("passes when a record matches", func() {
			v, err := records.NewRecordExists(records.Options{DB: db, Table: "users", Field: "email"})
			Expect(err).ToNot(HaveOccurred())
			Expect(v.Validate("a@x.com", nil).IsValid()).To(BeTrue())
			Expect(v.Validate("z@x.com", nil).Messages()).To(Equal(map[string]string{
				records.NoRecordFound: "No record matching the input was found",
			}))
		})

		It("can exclude a row", func() {
			v, err := records.NewRecordExists(records.Options{
				DB: db, Table: "users", Field: "email",
				Exclude: &records.Exclude{Field: "id", Value: 1},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(v.Query()).To(Equal("SELECT 1 FROM users WHERE email = ? AND id != ? LIMIT 1"))
			Expect(v.Validate("a@x.com", nil).Keys()).To(Equal([]string{records.NoRecordFound}))
			Expect(v.Validate("b@x.com", nil).IsValid()).To(BeTrue())
		})
	})

	Describe("NoRecordExists", func() {
		It("fails when a record matches", func() {
			v, err := records.NewNoRecordExists(records.Options{DB: db, Table: "users", Field: "email"})
			Expect(err).ToNot(HaveOccurred())
			Expect(v.Validate("z@x.com", nil).IsValid()).To(BeTrue())
			Expect(v.Validate("a@x.com", nil).Keys()).To(Equal([]string{records.RecordFound}))
		})
	})

	It("rejects bad identifiers and a missing db", func() {
		for _, opts := range []records.Options{
			{DB: db, Table: "users; DROP TABLE users", Field: "email"},
			{DB: db, Table: "users", Field: "1email"},
			{DB: db, Table: "users", Field: "email", Exclude: &records.Exclude{Field: "id = 1 OR 1"}},
			{Table: "users", Field: "email"},
		} {
			_, err := records.NewRecordExists(opts)
			Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
		}
		_, err := records.NewRecordExists(records.Options{DB: db, Table: "main.users", Field: "email"})
		Expect(err).ToNot(HaveOccurred())
	})

	It("reports and logs lookup failures", func() {
		boom := errors.New("connection lost")
		broken := sqlw.WithInterceptor(db, func(context.Context, string, []interface{}) error {
			return boom
		})
		logger, hook := logctx.NewNullLogger()
		v, err := records.NewRecordExists(records.Options{DB: broken, Table: "users", Field: "email", Logger: logger})
		Expect(err).ToNot(HaveOccurred())

		o, err := v.ValidateContext(context.Background(), "a@x.com", nil)
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(o.Keys()).To(Equal([]string{records.RecordLookupFailed}))

		o = v.Validate("a@x.com", nil)
		Expect(o.Keys()).To(Equal([]string{records.RecordLookupFailed}))
		Expect(hook.LastRecord().Record.Message).To(Equal("record_lookup_failed"))
	})

	It("reports a missing table as a lookup failure", func() {
		v, err := records.NewRecordExists(records.Options{DB: db, Table: "nope", Field: "email"})
		Expect(err).ToNot(HaveOccurred())
		_, err = v.ValidateContext(context.Background(), "a@x.com", nil)
		Expect(err).To(HaveOccurred())
	})
})
