// internal/models/catalog.go
package models

type Shop struct {
	BaseModel
	Name   string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	URL    string `json:"url,omitempty"`
	State  bool   `json:"state" gorm:"not null;default:true"`
	UserID uint   `json:"user_id" gorm:"uniqueIndex"` // one shop per owning user
	User   *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Categories   []Category    `json:"categories,omitempty" gorm:"many2many:shop_categories;constraint:OnDelete:CASCADE"`
	ProductInfos []ProductInfo `json:"product_infos,omitempty" gorm:"foreignKey:ShopID"`
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:40;not null"`

	Shops    []Shop    `json:"shops,omitempty" gorm:"many2many:shop_categories"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// ShopCategory is the shop/category join row. gorm manages it through the
// many2many tags above; it is declared explicitly so the link insert phase
// of shop creation can write rows directly.
type ShopCategory struct {
	ShopID     uint `json:"shop_id" gorm:"primaryKey"`
	CategoryID uint `json:"category_id" gorm:"primaryKey"`
}

func (ShopCategory) TableName() string { return "shop_categories" }

type Product struct {
	BaseModel
	Name       string    `json:"name" gorm:"size:80;not null"`
	CategoryID uint      `json:"category_id" gorm:"index;not null"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`

	ProductInfos []ProductInfo `json:"product_infos,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductInfo is a shop-specific priced and stocked variant of a product.
// The same product offered by the same shop under one external_id must be a
// single row.
type ProductInfo struct {
	BaseModel
	Model      string   `json:"model" gorm:"size:80"`
	ExternalID uint     `json:"external_id" gorm:"uniqueIndex:uniq_product_shop_external;not null"`
	ProductID  uint     `json:"product_id" gorm:"uniqueIndex:uniq_product_shop_external;not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ShopID     uint     `json:"shop_id" gorm:"uniqueIndex:uniq_product_shop_external;not null"`
	Shop       *Shop    `json:"shop,omitempty" gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Quantity   int      `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	Price      int      `json:"price" gorm:"not null;default:0;check:price >= 0"`
	PriceRRC   int      `json:"price_rrc" gorm:"not null;default:0;check:price_rrc >= 0"`

	ProductParameters []ProductParameter `json:"product_parameters,omitempty" gorm:"foreignKey:ProductInfoID"`
	OrderItems        []OrderItem        `json:"-" gorm:"foreignKey:ProductInfoID"`
}

type Parameter struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:40;not null"`

	ProductParameters []ProductParameter `json:"-" gorm:"foreignKey:ParameterID"`
}

// ProductParameter attaches a named attribute value to a variant; a
// parameter applies at most once per variant.
type ProductParameter struct {
	BaseModel
	ProductInfoID uint         `json:"product_info_id" gorm:"uniqueIndex:uniq_info_parameter;not null"`
	ProductInfo   *ProductInfo `json:"-" gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
	ParameterID   uint         `json:"parameter_id" gorm:"uniqueIndex:uniq_info_parameter;not null"`
	Parameter     *Parameter   `json:"parameter,omitempty" gorm:"foreignKey:ParameterID;constraint:OnDelete:CASCADE"`
	Value         string       `json:"value" gorm:"size:100"`
}
