package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Auth   *Auth   `json:"auth"`
}

type Server struct {
	HTTP *Server_HTTP `json:"http"`
}

type Server_HTTP struct {
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Data struct {
	// Driver selects the persistence backend: file, badger, postgres or mongo.
	Driver         string       `json:"driver"`
	PersistTimeout Duration     `json:"persist_timeout"`
	SeedTrains     string       `json:"seed_trains"`
	SeedUsers      string       `json:"seed_users"`
	File           *Data_File   `json:"file"`
	Badger         *Data_Badger `json:"badger"`
	Postgres       *Data_SQL    `json:"postgres"`
	Mongo          *Data_Mongo  `json:"mongo"`
}

type Data_File struct {
	TrainsPath string `json:"trains_path"`
	UsersPath  string `json:"users_path"`
}

type Data_Badger struct {
	Dir      string `json:"dir"`
	InMemory bool   `json:"in_memory"`
}

type Data_SQL struct {
	DSN string `json:"dsn"`
}

type Data_Mongo struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

type Auth struct {
	JWTSecret  string   `json:"jwt_secret"`
	Issuer     string   `json:"issuer"`
	TokenTTL   Duration `json:"token_ttl"`
	BcryptCost int      `json:"bcrypt_cost"`
}

// Duration decodes "3s" style strings as well as plain nanosecond numbers.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		if value == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
