package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// MyAccount is the authenticated user's own account at /my/account.
type MyAccount struct {
	ID           int
	Login        string
	IsAdmin      bool
	FirstName    string
	LastName     string
	Email        string
	CreatedOn    *time.Time
	LastLoginOn  *time.Time
	APIKey       string
	CustomFields []IssueCustomField
}

// Served only by Client.MyAccount and Client.UpdateMyAccount.
func (*MyAccount) resource() Meta {
	return Meta{Element: "user"}
}

func (a *MyAccount) EncodeXML(w *wire.XMLWriter) {
	w.String("firstname", a.FirstName)
	w.String("lastname", a.LastName)
	w.String("mail", a.Email)
	xmlWriteCustomFields(w, a.CustomFields)
}

func (a *MyAccount) EncodeJSON(w *wire.JSONWriter) {
	w.String("firstname", a.FirstName)
	w.String("lastname", a.LastName)
	w.String("mail", a.Email)
	jsonWriteCustomFields(w, a.CustomFields)
}

func (a *MyAccount) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			a.ID = r.Int()
		case "login":
			a.Login = r.Text()
		case "admin":
			a.IsAdmin = r.Bool()
		case "firstname":
			a.FirstName = r.Text()
		case "lastname":
			a.LastName = r.Text()
		case "mail":
			a.Email = r.Text()
		case "created_on":
			a.CreatedOn = r.Time()
		case "last_login_on":
			a.LastLoginOn = r.Time()
		case "api_key":
			a.APIKey = r.Text()
		case "custom_fields":
			a.CustomFields = xmlCustomFields(r)
		default:
			r.Skip()
		}
	})
}

func (a *MyAccount) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			a.ID = r.Int()
		case "login":
			a.Login = r.String()
		case "admin":
			a.IsAdmin = r.Bool()
		case "firstname":
			a.FirstName = r.String()
		case "lastname":
			a.LastName = r.String()
		case "mail":
			a.Email = r.String()
		case "created_on":
			a.CreatedOn = r.Time()
		case "last_login_on":
			a.LastLoginOn = r.Time()
		case "api_key":
			a.APIKey = r.String()
		case "custom_fields":
			a.CustomFields = jsonCustomFields(r)
		default:
			r.Skip()
		}
	})
}
