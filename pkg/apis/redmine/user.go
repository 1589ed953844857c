package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// UserStatus is the account state of a user.
type UserStatus int

const (
	UserActive     UserStatus = 1
	UserRegistered UserStatus = 2
	UserLocked     UserStatus = 3
)

// User is a Redmine account.
type User struct {
	ID                 int
	Login              string
	Password           string
	FirstName          string
	LastName           string
	Email              string
	IsAdmin            bool
	Status             UserStatus
	AuthenticationMode *int
	MailNotification   string
	MustChangePassword bool
	GeneratePassword   bool
	SendInformation    bool
	APIKey             string
	AvatarURL          string
	TwoFactorScheme    string

	CreatedOn         *time.Time
	UpdatedOn         *time.Time
	LastLoginOn       *time.Time
	PasswordChangedOn *time.Time

	CustomFields []IssueCustomField
	Memberships  []Membership
	Groups       []IdentifiableName
}

func (*User) resource() Meta {
	return Meta{Element: "user", Collection: "users", Path: "users"}
}

func (u *User) EncodeXML(w *wire.XMLWriter) {
	w.String("login", u.Login)
	w.StringIfNotEmpty("password", u.Password)
	w.String("firstname", u.FirstName)
	w.String("lastname", u.LastName)
	w.String("mail", u.Email)
	w.Bool("admin", u.IsAdmin)
	w.IntIfNotZero("status", int(u.Status))
	w.OptInt("auth_source_id", u.AuthenticationMode)
	w.StringIfNotEmpty("mail_notification", u.MailNotification)
	w.Bool("must_change_passwd", u.MustChangePassword)
	w.Bool("generate_password", u.GeneratePassword)
	if u.SendInformation {
		w.Bool("send_information", true)
	}
	xmlWriteCustomFields(w, u.CustomFields)
}

func (u *User) EncodeJSON(w *wire.JSONWriter) {
	w.String("login", u.Login)
	w.StringIfNotEmpty("password", u.Password)
	w.String("firstname", u.FirstName)
	w.String("lastname", u.LastName)
	w.String("mail", u.Email)
	w.Bool("admin", u.IsAdmin)
	w.IntIfNotZero("status", int(u.Status))
	w.OptInt("auth_source_id", u.AuthenticationMode)
	w.StringIfNotEmpty("mail_notification", u.MailNotification)
	w.Bool("must_change_passwd", u.MustChangePassword)
	w.Bool("generate_password", u.GeneratePassword)
	if u.SendInformation {
		w.Bool("send_information", true)
	}
	jsonWriteCustomFields(w, u.CustomFields)
}

func (u *User) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			u.ID = r.Int()
		case "login":
			u.Login = r.Text()
		case "password":
			u.Password = r.Text()
		case "firstname":
			u.FirstName = r.Text()
		case "lastname":
			u.LastName = r.Text()
		case "mail":
			u.Email = r.Text()
		case "admin":
			u.IsAdmin = r.Bool()
		case "status":
			u.Status = UserStatus(r.Int())
		case "auth_source_id":
			u.AuthenticationMode = r.OptInt()
		case "mail_notification":
			u.MailNotification = r.Text()
		case "must_change_passwd":
			u.MustChangePassword = r.Bool()
		case "generate_password":
			u.GeneratePassword = r.Bool()
		case "send_information":
			u.SendInformation = r.Bool()
		case "api_key":
			u.APIKey = r.Text()
		case "avatar_url":
			u.AvatarURL = r.Text()
		case "twofa_scheme":
			u.TwoFactorScheme = r.Text()
		case "created_on":
			u.CreatedOn = r.Time()
		case "updated_on":
			u.UpdatedOn = r.Time()
		case "last_login_on":
			u.LastLoginOn = r.Time()
		case "passwd_changed_on":
			u.PasswordChangedOn = r.Time()
		case "custom_fields":
			u.CustomFields = xmlCustomFields(r)
		case "memberships":
			u.Memberships = readXMLList[Membership](r, "membership")
		case "groups":
			u.Groups = readXMLList[IdentifiableName](r, "group")
		default:
			r.Skip()
		}
	})
}

func (u *User) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			u.ID = r.Int()
		case "login":
			u.Login = r.String()
		case "password":
			u.Password = r.String()
		case "firstname":
			u.FirstName = r.String()
		case "lastname":
			u.LastName = r.String()
		case "mail":
			u.Email = r.String()
		case "admin":
			u.IsAdmin = r.Bool()
		case "status":
			u.Status = UserStatus(r.Int())
		case "auth_source_id":
			u.AuthenticationMode = r.OptInt()
		case "mail_notification":
			u.MailNotification = r.String()
		case "must_change_passwd":
			u.MustChangePassword = r.Bool()
		case "generate_password":
			u.GeneratePassword = r.Bool()
		case "send_information":
			u.SendInformation = r.Bool()
		case "api_key":
			u.APIKey = r.String()
		case "avatar_url":
			u.AvatarURL = r.String()
		case "twofa_scheme":
			u.TwoFactorScheme = r.String()
		case "created_on":
			u.CreatedOn = r.Time()
		case "updated_on":
			u.UpdatedOn = r.Time()
		case "last_login_on":
			u.LastLoginOn = r.Time()
		case "passwd_changed_on":
			u.PasswordChangedOn = r.Time()
		case "custom_fields":
			u.CustomFields = jsonCustomFields(r)
		case "memberships":
			u.Memberships = readJSONList[Membership](r)
		case "groups":
			u.Groups = readJSONList[IdentifiableName](r)
		default:
			r.Skip()
		}
	})
}

// Membership is a project membership as listed under a user or group.
type Membership struct {
	ID      int
	Project *IdentifiableName
	Roles   []MembershipRole
}

// MembershipRole is a role granted by a membership. Inherited roles come from a group.
type MembershipRole struct {
	ID        int
	Name      string
	Inherited bool
}

func (m *Membership) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			m.ID = r.Int()
		case "project":
			m.Project = xmlRef(r, el)
		case "roles":
			m.Roles = readXMLList[MembershipRole](r, "role")
		default:
			r.Skip()
		}
	})
}

func (m *Membership) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			m.ID = r.Int()
		case "project":
			m.Project = jsonRef(r)
		case "roles":
			m.Roles = readJSONList[MembershipRole](r)
		default:
			r.Skip()
		}
	})
}

func (m *MembershipRole) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	m.ID = r.AttrInt(start, "id")
	m.Name = wire.Attr(start, "name")
	m.Inherited = r.AttrBool(start, "inherited")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			m.ID = r.Int()
		case "name":
			m.Name = r.Text()
		case "inherited":
			m.Inherited = r.Bool()
		default:
			r.Skip()
		}
	})
}

func (m *MembershipRole) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			m.ID = r.Int()
		case "name":
			m.Name = r.String()
		case "inherited":
			m.Inherited = r.Bool()
		default:
			r.Skip()
		}
	})
}

func roleIDs(roles []MembershipRole) []int {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]int, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}
	return ids
}

func rolesFromIDs(ids []int) []MembershipRole {
	if len(ids) == 0 {
		return nil
	}
	roles := make([]MembershipRole, 0, len(ids))
	for _, id := range ids {
		roles = append(roles, MembershipRole{ID: id})
	}
	return roles
}
