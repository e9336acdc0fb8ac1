package testutils

// fixtureFiles maps rule-file paths (relative to the data dir) to their JSON
// content. The records mirror the shapes of the production data set.
var fixtureFiles = map[string]string{
	"classes/fighter.json": `{
  "name": "Fighter",
  "hit_die": 10,
  "subclass_selection_level": 3,
  "saving_throw_proficiencies": ["Strength", "Constitution"],
  "armor_proficiencies": ["Light Armor", "Medium Armor", "Heavy Armor", "Shields"],
  "weapon_proficiencies": ["Simple weapons", "Martial weapons"],
  "skill_options": ["Acrobatics", "Animal Handling", "Athletics", "History", "Insight", "Intimidation", "Perception", "Persuasion", "Survival"],
  "skill_proficiencies_count": 2,
  "standard_array_assignment": {"strength": 15, "dexterity": 14, "constitution": 13, "intelligence": 8, "wisdom": 10, "charisma": 12},
  "weapon_mastery_slots": {"1": 3, "4": 4, "10": 5, "16": 6},
  "starting_equipment": {
    "A": {"items": ["Chain Mail", "Greatsword", "Flail", "Javelin"], "gold": 4},
    "B": {"items": ["Leather Armor", "Longsword", "Shield", "Longbow"], "gold": 11}
  },
  "fighting_styles": {
    "Archery": {
      "description": "You gain a +2 bonus to attack rolls you make with ranged weapons.",
      "effects": [{"type": "bonus_attack", "value": 2, "weapon_property": "Ranged"}]
    },
    "Defense": {
      "description": "While you are wearing Light, Medium, or Heavy armor, you gain a +1 bonus to Armor Class.",
      "effects": [{"type": "bonus_ac", "value": 1, "condition": "while wearing armor"}]
    },
    "Dueling": {
      "description": "When you are holding a melee weapon in one hand and no other weapons, you gain a +2 bonus to damage rolls with that weapon.",
      "effects": [{"type": "bonus_damage", "value": 2, "condition": "one handed melee weapon"}]
    },
    "Great Weapon Fighting": {
      "description": "When you roll damage for an attack you make with a melee weapon that you are holding with two hands, you can treat any 1 or 2 on a damage die as a 3.",
      "effects": [{"type": "great_weapon_fighting"}]
    },
    "Thrown Weapon Fighting": {
      "description": "When you hit with a ranged attack using a thrown weapon, you gain a +2 bonus to the damage roll.",
      "effects": [{"type": "bonus_damage", "value": 2, "condition": "thrown weapon ranged attack"}]
    },
    "Two-Weapon Fighting": {
      "description": "When you make an extra attack as a result of using a weapon that has the Light property, you can add your ability modifier to the damage of that attack.",
      "effects": [{"type": "two_weapon_fighting_modifier"}]
    },
    "Unarmed Fighting": {
      "description": "Your Unarmed Strikes can deal Bludgeoning damage equal to 1d6 plus your Strength modifier. If you aren't holding any weapons or a Shield, the d6 becomes a d8. At the start of each of your turns, you can deal 1d4 Bludgeoning damage to one creature Grappled by you.",
      "effects": [{"type": "unarmed_fighting"}]
    }
  },
  "features_by_level": {
    "1": {
      "Fighting Style": {
        "description": "Choose a fighting style",
        "choices": {"name": "fighting_style", "source": {"type": "internal", "list": "fighting_styles"}, "count": 1, "required": true}
      },
      "Second Wind": {
        "description": "You can use a Bonus Action to regain {second_wind_dice} + your Fighter level Hit Points. You can use this feature {uses} times, and you regain one expended use when you finish a Short Rest.",
        "scaling": {
          "second_wind_dice": [{"min_level": 1, "value": "1d10"}],
          "uses": [{"min_level": 1, "value": 2}, {"min_level": 4, "value": 3}, {"min_level": 10, "value": 4}]
        }
      },
      "Weapon Mastery": {
        "description": "Your training with weapons allows you to use the mastery properties of three kinds of Simple or Martial weapons of your choice."
      }
    },
    "2": {
      "Action Surge": {
        "description": "You can push yourself beyond your normal limits for a moment. On your turn, you can take one additional action."
      }
    },
    "3": {
      "Fighter Subclass": "Choose a Fighter subclass"
    },
    "5": {
      "Extra Attack": {
        "description": "You can attack twice instead of once whenever you take the Attack action on your turn."
      }
    }
  }
}`,

	"classes/barbarian.json": `{
  "name": "Barbarian",
  "hit_die": 12,
  "subclass_selection_level": 3,
  "saving_throw_proficiencies": ["Strength", "Constitution"],
  "armor_proficiencies": ["Light Armor", "Medium Armor", "Shields"],
  "weapon_proficiencies": ["Simple weapons", "Martial weapons"],
  "skill_options": ["Animal Handling", "Athletics", "Intimidation", "Nature", "Perception", "Survival"],
  "skill_proficiencies_count": 2,
  "standard_array_assignment": {"strength": 15, "dexterity": 13, "constitution": 14, "intelligence": 8, "wisdom": 10, "charisma": 12},
  "weapon_mastery_slots": {"1": 2, "4": 3, "10": 4},
  "starting_equipment": {
    "A": {"items": ["Greatsword", "Javelin"], "gold": 15},
    "B": {"gold": 75}
  },
  "features_by_level": {
    "1": {
      "Rage": {
        "description": "While raging, you gain a +{rage_damage} bonus to the damage roll of attacks using Strength, you have Resistance to Bludgeoning, Piercing, and Slashing damage, and you have Advantage on Strength checks and Strength saving throws.",
        "scaling": {
          "rage_damage": [{"min_level": 1, "value": 2}, {"min_level": 9, "value": 3}, {"min_level": 16, "value": 4}]
        }
      },
      "Unarmored Defense": {
        "description": "While you aren't wearing any armor, your base Armor Class equals 10 plus your Dexterity and Constitution modifiers. You can use a Shield and still gain this benefit."
      },
      "Weapon Mastery": {
        "description": "Your training with weapons allows you to use the mastery properties of two kinds of Simple or Martial Melee weapons of your choice."
      }
    },
    "2": {
      "Danger Sense": {
        "description": "You have Advantage on Dexterity saving throws unless you have the Incapacitated condition."
      },
      "Reckless Attack": {
        "description": "You can throw aside all concern for defense to attack with fierce desperation."
      }
    },
    "5": {
      "Extra Attack": {
        "description": "You can attack twice instead of once whenever you take the Attack action on your turn."
      },
      "Fast Movement": {
        "description": "Your speed increases by 10 feet while you aren't wearing Heavy armor.",
        "effects": [{"type": "increase_speed", "value": 10}]
      }
    }
  }
}`,

	"classes/cleric.json": `{
  "name": "Cleric",
  "hit_die": 8,
  "subclass_selection_level": 3,
  "spellcasting_ability": "wisdom",
  "spellcasting_type": "prepared",
  "ritual_casting": true,
  "saving_throw_proficiencies": ["Wisdom", "Charisma"],
  "armor_proficiencies": ["Light Armor", "Medium Armor", "Shields"],
  "weapon_proficiencies": ["Simple weapons"],
  "skill_options": ["History", "Insight", "Medicine", "Persuasion", "Religion"],
  "skill_proficiencies_count": 2,
  "standard_array_assignment": {"strength": 13, "dexterity": 10, "constitution": 14, "intelligence": 8, "wisdom": 15, "charisma": 12},
  "starting_equipment": {
    "A": {"items": ["Shield", "Quarterstaff"], "gold": 7},
    "B": {"gold": 110}
  },
  "divine_orders": {
    "Protector": {
      "description": "Trained for battle, you gain proficiency with Martial weapons and training with Heavy armor.",
      "effects": [
        {"type": "grant_weapon_proficiency", "proficiencies": ["Martial weapons"]},
        {"type": "grant_armor_proficiency", "proficiencies": ["Heavy Armor"]}
      ]
    },
    "Thaumaturge": {
      "description": "You know one extra cantrip from the Cleric spell list. In addition, your mystical connection to the divine gives you a bonus to your Intelligence (Arcana or Religion) checks equal to your Wisdom modifier (minimum of +1).",
      "effects": [
        {"type": "grant_cantrip_choice", "count": 1, "spell_list": "Cleric"},
        {"type": "ability_bonus", "skills": ["Arcana", "Religion"], "value": "wisdom_modifier", "minimum": 1}
      ]
    }
  },
  "features_by_level": {
    "1": {
      "Spellcasting": {
        "description": "You have learned to cast spells through prayer and meditation. Wisdom is your spellcasting ability for your Cleric spells.",
        "scaling": {
          "cantrips_known": [{"min_level": 1, "value": 3}, {"min_level": 4, "value": 4}, {"min_level": 10, "value": 5}]
        }
      },
      "Divine Order": {
        "description": "Choose a divine order",
        "choices": {"name": "divine_order", "source": {"type": "internal", "list": "divine_orders"}, "count": 1, "required": true}
      }
    },
    "2": {
      "Channel Divinity": {
        "description": "You can channel divine energy directly from the Outer Planes to fuel magical effects."
      }
    }
  }
}`,

	"classes/rogue.json": `{
  "name": "Rogue",
  "hit_die": 8,
  "subclass_selection_level": 3,
  "saving_throw_proficiencies": ["Dexterity", "Intelligence"],
  "armor_proficiencies": ["Light Armor"],
  "weapon_proficiencies": ["Simple weapons", "Martial weapons with the Finesse or Light property"],
  "skill_options": ["Acrobatics", "Athletics", "Deception", "Insight", "Intimidation", "Investigation", "Perception", "Persuasion", "Sleight of Hand", "Stealth"],
  "skill_proficiencies_count": 4,
  "standard_array_assignment": {"strength": 8, "dexterity": 15, "constitution": 13, "intelligence": 12, "wisdom": 10, "charisma": 14},
  "weapon_mastery_slots": {"1": 2},
  "starting_equipment": {
    "A": {"items": ["Leather Armor", "Dagger", "Shortsword"], "gold": 8},
    "B": {"gold": 100}
  },
  "features_by_level": {
    "1": {
      "Expertise": {
        "description": "Choose two of your skill proficiencies",
        "choices": {"name": "expertise", "source": {"type": "fixed_list", "options": ["Acrobatics", "Athletics", "Deception", "Insight", "Intimidation", "Investigation", "Perception", "Persuasion", "Sleight of Hand", "Stealth"]}, "count": 2, "required": true}
      },
      "Sneak Attack": {
        "description": "You know how to strike subtly and exploit a foe's distraction. Once per turn, you can deal an extra {sneak_attack_dice} damage to one creature you hit with an attack roll if you have Advantage on the roll and the attack uses a Finesse or a Ranged weapon.",
        "scaling": {
          "sneak_attack_dice": [{"min_level": 1, "value": "1d6"}, {"min_level": 3, "value": "2d6"}, {"min_level": 5, "value": "3d6"}]
        }
      },
      "Thieves' Cant": {
        "description": "You picked up various languages in the communities where you plied your roguish talents."
      },
      "Weapon Mastery": {
        "description": "Your training with weapons allows you to use the mastery properties of two kinds of weapons of your choice."
      }
    },
    "2": {
      "Cunning Action": {
        "description": "Your quick thinking and agility allow you to move and act quickly."
      }
    }
  }
}`,

	"classes/subclasses/fighter/champion.json": `{
  "name": "Champion",
  "class": "Fighter",
  "features_by_level": {
    "3": {
      "Improved Critical": {
        "description": "Your attack rolls with weapons and Unarmed Strikes can score a Critical Hit on a roll of 19 or 20 on the d20."
      },
      "Remarkable Athlete": {
        "description": "Thanks to your athleticism, you have Advantage on Initiative rolls and Strength (Athletics) checks."
      }
    },
    "7": {
      "Additional Fighting Style": {
        "description": "Choose another fighting style",
        "choices": {"name": "additional_fighting_style", "source": {"type": "internal", "list": "fighting_styles"}, "count": 1, "required": true}
      }
    }
  }
}`,

	"species/elf.json": `{
  "name": "Elf",
  "speed": 30,
  "darkvision": 60,
  "size": "Medium",
  "creature_type": "Humanoid",
  "languages": ["Common", "Elvish"],
  "lineages": ["Wood Elf", "High Elf"],
  "traits": {
    "Darkvision": {
      "description": "You have Darkvision with a range of 60 feet.",
      "effects": [{"type": "grant_darkvision", "range": 60}]
    },
    "Fey Ancestry": {
      "description": "You have Advantage on saving throws you make to avoid or end the Charmed condition.",
      "effects": [{"type": "grant_save_advantage", "abilities": ["wisdom", "charisma"], "display": "vs. Charmed"}]
    },
    "Keen Senses": {
      "description": "Choose a skill",
      "choices": {"name": "keen_senses", "source": {"type": "fixed_list", "options": ["Insight", "Perception", "Survival"]}, "count": 1, "required": true},
      "choice_effects": {
        "Insight": [{"type": "grant_skill_proficiency", "skills": ["Insight"]}],
        "Perception": [{"type": "grant_skill_proficiency", "skills": ["Perception"]}],
        "Survival": [{"type": "grant_skill_proficiency", "skills": ["Survival"]}]
      },
      "option_descriptions": {
        "Insight": "You gain proficiency in the Insight skill.",
        "Perception": "You gain proficiency in the Perception skill.",
        "Survival": "You gain proficiency in the Survival skill."
      }
    },
    "Trance": {
      "description": "You don't need to sleep, and magic can't put you to sleep. You can finish a Long Rest in 4 hours if you spend those hours in a trancelike meditation, during which you retain consciousness."
    }
  }
}`,

	"species/lineages/wood_elf.json": `{
  "name": "Wood Elf",
  "parent_species": "Elf",
  "speed": 35,
  "traits": {
    "Elven Lineage": {
      "description": "You are part of a lineage that grants you supernatural abilities. Your speed increases to 35 feet, and you know the Druidcraft cantrip.",
      "effects": [
        {"type": "grant_cantrip", "spell": "Druidcraft"},
        {"type": "grant_spell", "spell": "Longstrider", "min_level": 3},
        {"type": "grant_spell", "spell": "Pass without Trace", "min_level": 5}
      ]
    }
  }
}`,

	"backgrounds/sage.json": `{
  "name": "Sage",
  "skill_proficiencies": ["Arcana", "History"],
  "tool_proficiencies": ["Calligrapher's Supplies"],
  "languages": 2,
  "feat": "Magic Initiate (Wizard)",
  "ability_score_increase": {
    "options": ["constitution", "intelligence", "wisdom"],
    "suggested": {"intelligence": 2, "wisdom": 1}
  },
  "features": {
    "Researcher": {
      "description": "When you attempt to learn or recall a piece of lore, you often know where and from whom you can obtain it."
    }
  },
  "starting_equipment": {
    "A": {"items": ["Quarterstaff", "Book of Lore", "Parchment"], "gold": 8},
    "B": {"gold": 50}
  }
}`,

	"spells/class_lists/cleric.json": `{
  "cantrips": ["Guidance", "Light", "Sacred Flame", "Thaumaturgy"],
  "spells": {
    "Bless": {"name": "Bless", "level": 1, "school": "Enchantment"},
    "Cure Wounds": {"name": "Cure Wounds", "level": 1, "school": "Abjuration"},
    "Healing Word": {"name": "Healing Word", "level": 1, "school": "Abjuration"}
  }
}`,

	"spells/class_lists/wizard.json": `{
  "cantrips": ["Fire Bolt", "Mage Hand", "Prestidigitation"],
  "spells": {
    "Detect Magic": {"name": "Detect Magic", "level": 1, "school": "Divination"},
    "Magic Missile": {"name": "Magic Missile", "level": 1, "school": "Evocation"}
  }
}`,

	"spells/definitions/longstrider.json": `{
  "name": "Longstrider",
  "level": 1,
  "school": "Transmutation",
  "casting_time": "Action",
  "range": "Touch",
  "duration": "1 hour",
  "description": "You touch a creature. The target's Speed increases by 10 feet until the spell ends."
}`,

	"spells/definitions/pass_without_trace.json": `{
  "name": "Pass without Trace",
  "level": 2,
  "school": "Abjuration",
  "casting_time": "Action",
  "range": "Self",
  "duration": "Concentration, up to 1 hour",
  "description": "You radiate a veil of shadows, and you and up to ten creatures of your choice within 30 feet each gain a +10 bonus to Dexterity (Stealth) checks."
}`,

	"spells/definitions/druidcraft.json": `{
  "name": "Druidcraft",
  "level": 0,
  "school": "Transmutation",
  "casting_time": "Action",
  "range": "30 feet",
  "duration": "Instantaneous",
  "description": "Whispering to the spirits of nature, you create a minor nature effect within range."
}`,
}
